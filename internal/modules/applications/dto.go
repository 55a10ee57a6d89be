package applications

type ApplyRequest struct {
	Proposal string `json:"proposal" binding:"required"`
}
