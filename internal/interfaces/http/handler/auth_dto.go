package handler

import (
	appidentity "github.com/debttrack/backend/internal/application/identity"
)

// RegisterBody is the request body for account registration
type RegisterBody struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

func (b *RegisterBody) toInput() appidentity.RegisterInput {
	return appidentity.RegisterInput{
		Name:     b.Name,
		Email:    b.Email,
		Password: b.Password,
	}
}

// LoginBody is the request body for login
type LoginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (b *LoginBody) toInput() appidentity.LoginInput {
	return appidentity.LoginInput{
		Email:    b.Email,
		Password: b.Password,
	}
}
