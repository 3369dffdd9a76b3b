package get_provider_appointments

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/internal/service/appointments/models"
)

// ToServiceRequest собирает запрос сервиса из query параметров
func ToServiceRequest(providerID int64, fromStr, toStr, statusStr, includeReleasedStr string) (*models.GetProviderAppointmentsRequest, error) {
	req := &models.GetProviderAppointmentsRequest{
		ProviderID:      providerID,
		IncludeReleased: includeReleasedStr == "true",
	}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		// Верхняя граница - конец дня (эксклюзивно)
		toEnd := to.AddDate(0, 0, 1)
		req.To = &toEnd
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
