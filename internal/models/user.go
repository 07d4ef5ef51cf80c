package models

type User struct {
	ID       int64  `json:"id"`
	Login    string `json:"login"`
	PassHash []byte `json:"-"`
}

type ctxKey string

const UserContextKey ctxKey = "user"
