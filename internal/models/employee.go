package models

import "time"

type Employee struct {
	EmployeeID string    `json:"employee_id"`
	Salary     float64   `json:"salary"`
	HireDate   time.Time `json:"hire_date"`
	UserID     int       `json:"user_id"`

	User *User `json:"user,omitempty"`
}

type CreateEmployeeRequest struct {
	Username string  `json:"username" binding:"required,min=4"`
	Password string  `json:"password" binding:"required"`
	FullName string  `json:"full_name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone" binding:"required"`
	Salary   float64 `json:"salary" binding:"required"`
	HireDate string  `json:"hire_date"` // 2006-01-02, defaults to today
}

type UpdateEmployeeRequest struct {
	FullName string   `json:"full_name"`
	Phone    string   `json:"phone"`
	Salary   *float64 `json:"salary"`
}
