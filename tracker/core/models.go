package core

type User struct {
	ID       int64  `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Password []byte `db:"password"` // bcrypt hash
}

type Task struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Completed bool   `db:"completed"`
	UserID    int64  `db:"user_id"`
}

// TaskPatch carries the fields of an update. Nil means "leave as is".
type TaskPatch struct {
	Name      *string
	Completed *bool
}

func (p TaskPatch) Empty() bool {
	return p.Name == nil && p.Completed == nil
}
