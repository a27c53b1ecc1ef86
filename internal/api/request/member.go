package request

type RegisterMemberRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
}

type SetApprovalRequest struct {
	IsApproved *bool `json:"isApproved"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}
