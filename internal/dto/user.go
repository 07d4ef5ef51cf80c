package dto

type UserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}
