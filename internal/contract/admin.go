package contract

type CreateUserRequest struct {
	Name              string `json:"name" validate:"required,notblank,max=100"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=6"`
	Role              string `json:"role" validate:"omitempty,oneof=student teacher admin"`
	AssignedTeacherID string `json:"assignedTeacherId"`
}

type UpdateUserRequest struct {
	Name              *string `json:"name" validate:"omitempty,notblank,max=100"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Role              *string `json:"role" validate:"omitempty,oneof=student teacher admin"`
	AssignedTeacherID *string `json:"assignedTeacherId"`
	Password          *string `json:"password" validate:"omitempty,min=6"`
}
