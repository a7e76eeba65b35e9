package v1

import "github.com/shenikar/resqalert/internal/models"

// DTOToReportModel преобразует входящее сообщение в доменную модель.
// Неизвестный статус отбрасывается, сервис выставит Before.
func DTOToReportModel(dto IngestReportRequest) *models.Report {
	report := &models.Report{
		Flags:        dto.Flag,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		Timestamp:    dto.Timestamp,
		WhoInvolved:  dto.WhoInvolved,
		PeopleCount:  dto.PeopleCount,
		Details:      dto.Details,
		Notes:        dto.Notes,
		Media:        dto.Media,
		PhoneNumber:  dto.PhoneNumber,
		AccidentType: dto.AccidentType,
	}
	if status, err := models.ParseReportStatus(dto.Status); err == nil {
		report.Status = status
	}
	return report
}

func ModelToReportResponse(model *models.Report) *ReportResponse {
	return &ReportResponse{
		ID:           model.ID,
		Flag:         model.Flags.Strings(),
		Status:       string(model.Status),
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		Timestamp:    model.Timestamp,
		WhoInvolved:  model.WhoInvolved,
		PeopleCount:  model.PeopleCount,
		Details:      model.Details,
		Notes:        model.Notes,
		Place:        model.Place,
		Media:        model.Media,
		PhoneNumber:  model.PhoneNumber,
		AccidentType: model.AccidentType,
		Version:      model.Version,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func ModelsToReportResponses(reports []*models.Report) []*ReportResponse {
	responses := make([]*ReportResponse, len(reports))
	for i, r := range reports {
		responses[i] = ModelToReportResponse(r)
	}
	return responses
}

func ModelsToStatusChangeResponses(changes []*models.StatusChange) []*StatusChangeResponse {
	responses := make([]*StatusChangeResponse, len(changes))
	for i, c := range changes {
		responses[i] = &StatusChangeResponse{
			FromStatus: string(c.FromStatus),
			ToStatus:   string(c.ToStatus),
			ChangedBy:  c.ChangedBy,
			ChangedAt:  c.ChangedAt,
		}
	}
	return responses
}

func ModelToBlockedNumberResponse(model *models.BlockedNumber) *BlockedNumberResponse {
	return &BlockedNumberResponse{
		ID:          model.ID,
		ReportID:    model.ReportID,
		PhoneNumber: model.PhoneNumber,
		BlockedBy:   string(model.BlockedBy),
		Timestamp:   model.Timestamp,
	}
}

func ModelsToBlockedNumberResponses(blocked []*models.BlockedNumber) []*BlockedNumberResponse {
	responses := make([]*BlockedNumberResponse, len(blocked))
	for i, b := range blocked {
		responses[i] = ModelToBlockedNumberResponse(b)
	}
	return responses
}

func ModelToRequestDetailResponse(model *models.RequestDetail) *RequestDetailResponse {
	if model == nil {
		return nil
	}
	return &RequestDetailResponse{
		ID:          model.ID,
		RequestID:   model.RequestID,
		IncidentID:  model.IncidentID,
		FromRole:    string(model.FromRole),
		ToRole:      string(model.ToRole),
		Status:      string(model.Status),
		WhoInvolved: model.WhoInvolved,
		PeopleCount: model.PeopleCount,
		Details:     model.Details,
		Notes:       model.Notes,
		Timestamp:   model.Timestamp,
	}
}

func ModelToHandoffResponse(model *models.HandoffRequest) *HandoffResponse {
	return &HandoffResponse{
		ID:         model.ID,
		IncidentID: model.IncidentID,
		FromRole:   string(model.FromRole),
		ToRole:     string(model.ToRole),
		Status:     string(model.Status),
		Timestamp:  model.Timestamp,
		Approval:   ModelToRequestDetailResponse(model.Approval),
	}
}

func ModelsToHandoffResponses(requests []*models.HandoffRequest) []*HandoffResponse {
	responses := make([]*HandoffResponse, len(requests))
	for i, r := range requests {
		responses[i] = ModelToHandoffResponse(r)
	}
	return responses
}

func DTOToApprovalInput(dto ApproveHandoffRequest) models.ApprovalInput {
	return models.ApprovalInput{
		WhoInvolved: dto.WhoInvolved,
		PeopleCount: dto.PeopleCount,
		Details:     dto.Details,
		Notes:       dto.Notes,
	}
}

func ModelToFeedbackResponse(model *models.Feedback) *FeedbackResponse {
	return &FeedbackResponse{
		ID:          model.ID,
		Ticket:      model.Ticket,
		Message:     model.Message,
		SubmittedBy: string(model.SubmittedBy),
		Status:      string(model.Status),
		Timestamp:   model.Timestamp,
	}
}

func ModelsToFeedbackResponses(items []*models.Feedback) []*FeedbackResponse {
	responses := make([]*FeedbackResponse, len(items))
	for i, f := range items {
		responses[i] = ModelToFeedbackResponse(f)
	}
	return responses
}
