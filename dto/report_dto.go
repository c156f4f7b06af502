package dto

import "github.com/lohith8088/UrbanFix-Backend/domain"

type CreateReportRequest struct {
	Title       string   `json:"title" binding:"required,max=120"`
	Description string   `json:"description" binding:"max=2000"`
	Category    string   `json:"category" binding:"max=50"`
	Address     string   `json:"address" binding:"max=300"`
	PhotoURLs   []string `json:"photo_urls" binding:"omitempty,dive,url"`
	VideoURLs   []string `json:"video_urls" binding:"omitempty,dive,url"`
}

func MakeCreateReportInput(req *CreateReportRequest, createdBy string) domain.CreateReportInput {
	return domain.CreateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
		PhotoURLs:   req.PhotoURLs,
		VideoURLs:   req.VideoURLs,
		CreatedBy:   createdBy,
	}
}

type UpdateReportRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=120"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Category    *string `json:"category" binding:"omitempty,max=50"`
	Address     *string `json:"address" binding:"omitempty,max=300"`
}

func MakeUpdateReportInput(req *UpdateReportRequest) domain.UpdateReportInput {
	return domain.UpdateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Approved Rejected Resolved"`
}
