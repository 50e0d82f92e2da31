package dto

// SubmitApplicationRequest mirrors the public registration form. Field names
// follow the form keys the dashboard posts.
type SubmitApplicationRequest struct {
	FullName string `json:"Full_name"`
	Email    string `json:"Email"`
	Phone    string `json:"Phone_number"`
	Password string `json:"Password"`
	CVPath   string `json:"-"`
}

type ReviewApplicationRequest struct {
	Email   string `json:"email"`
	Approve *bool  `json:"approve"`
}
