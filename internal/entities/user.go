package entities

type User struct {
	ID       int64  `db:"id"`
	Login    string `db:"login"`
	PassHash []byte `db:"pass_hash"`
}
