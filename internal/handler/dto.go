package handler

import (
	"time"

	"github.com/msomdec/crag-log/internal/service"
)

// SessionStatDTO is the JSON representation of one session's analytics metadata.
type SessionStatDTO struct {
	SessionID  int64   `json:"sessionId"`
	Label      string  `json:"label"`
	GymName    string  `json:"gymName"`
	StartTime  string  `json:"startTime"`
	ClimbCount int     `json:"climbCount"`
	ModalGrade *string `json:"modalGrade"`
	Minutes    *int    `json:"minutes"`
}

func toSessionStatDTO(s service.SessionStat) SessionStatDTO {
	return SessionStatDTO{
		SessionID:  s.SessionID,
		Label:      s.Label,
		GymName:    s.GymName,
		StartTime:  s.StartTime.Format(time.RFC3339),
		ClimbCount: s.ClimbCount,
		ModalGrade: s.ModalGrade,
		Minutes:    s.Minutes,
	}
}

// WeekPointDTO is the JSON representation of one point of the weekly series.
type WeekPointDTO struct {
	Year         int              `json:"year"`
	Week         int              `json:"week"`
	Label        string           `json:"label"`
	TotalMinutes int              `json:"totalMinutes"`
	Sessions     []SessionStatDTO `json:"sessions"`
}

func toWeekPointDTO(p service.WeekPoint) WeekPointDTO {
	sessions := make([]SessionStatDTO, len(p.Sessions))
	for i, s := range p.Sessions {
		sessions[i] = toSessionStatDTO(s)
	}
	return WeekPointDTO{
		Year:         p.Year,
		Week:         p.Week,
		Label:        p.Label,
		TotalMinutes: p.TotalMinutes,
		Sessions:     sessions,
	}
}

func toWeekPointDTOs(series []service.WeekPoint) []WeekPointDTO {
	dtos := make([]WeekPointDTO, len(series))
	for i, p := range series {
		dtos[i] = toWeekPointDTO(p)
	}
	return dtos
}
