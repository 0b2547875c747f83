package models

import (
	"time"
)

// AuthUser is the identity record issued by the backend's auth service.
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthSession is the token pair returned on sign-in.
type AuthSession struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	User         *AuthUser `json:"user"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	FullName string `json:"full_name"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignUpRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "이메일을 입력해주세요."
	}
	if r.Password == "" {
		errors["password"] = "비밀번호를 입력해주세요."
	} else if len(r.Password) < 6 {
		errors["password"] = "비밀번호는 6자 이상 입력해주세요."
	}

	return errors
}

func (r *SignInRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "이메일을 입력해주세요."
	}
	if r.Password == "" {
		errors["password"] = "비밀번호를 입력해주세요."
	}

	return errors
}
