package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

type AppointmentListDTO struct {
	ID          uint            `json:"id"`
	Reference   string          `json:"reference"`
	Date        string          `json:"date"`
	StartTime   string          `json:"start_time"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ClientID    uint            `json:"client_id"`
	ClientName  string          `json:"client_name"`
	ServiceID   *uint           `json:"service_id"`
	ServiceName string          `json:"service_name"`
}

// Confirmation is what a customer sees after booking and when looking the
// booking up by reference.
type Confirmation struct {
	Reference   string          `json:"reference"`
	Barbershop  string          `json:"barbershop"`
	ClientName  string          `json:"client_name"`
	ServiceName string          `json:"service_name"`
	Date        string          `json:"date"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time,omitempty"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AvailabilityDTO struct {
	Date      string   `json:"date"`
	ServiceID uint     `json:"service_id"`
	Slots     []string `json:"slots"`
}

func ToAppointmentList(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:         ap.ID,
		Reference:  ap.Reference,
		Date:       ap.Date,
		StartTime:  ap.StartTime,
		Status:     ap.Status,
		TotalPrice: ap.TotalPrice,
		ClientID:   ap.ClientID,
		ServiceID:  ap.ServiceID,
	}
	if ap.Client != nil {
		out.ClientName = ap.Client.Name
	}
	if ap.Service != nil {
		out.ServiceName = ap.Service.Name
	}
	return out
}

func ToAppointmentLists(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ToAppointmentList(ap))
	}
	return out
}
