package booking

import (
	"context"
	"time"

	"asdcare/models"

	"go.uber.org/zap"
)

var zeroTime time.Time

func (s *DefaultAppointmentService) view(ctx context.Context, appt *models.Appointment) *models.AppointmentView {
	views := s.views(ctx, []models.Appointment{*appt})
	return &views[0]
}

// views attaches child, therapist and parent names. Lookups that fail leave
// the names empty rather than failing the listing.
func (s *DefaultAppointmentService) views(ctx context.Context, appts []models.Appointment) []models.AppointmentView {
	out := make([]models.AppointmentView, len(appts))
	if len(appts) == 0 {
		return out
	}

	childIDs := make([]string, 0, len(appts))
	userIDs := make([]string, 0, 2*len(appts))
	for _, a := range appts {
		childIDs = append(childIDs, a.ChildID)
		userIDs = append(userIDs, a.TherapistID, a.ParentID)
	}

	children, err := s.children.GetByIDs(ctx, childIDs)
	if err != nil {
		s.logger.Warn("child lookup failed", zap.Error(err))
	}
	users := map[string]*models.User{}
	if s.users != nil {
		if users, err = s.users.GetByIDs(ctx, userIDs); err != nil {
			s.logger.Warn("user lookup failed", zap.Error(err))
		}
	}

	for i, a := range appts {
		out[i] = models.AppointmentView{Appointment: a}
		if c, ok := children[a.ChildID]; ok {
			out[i].ChildName = c.Name
		}
		if t, ok := users[a.TherapistID]; ok {
			out[i].TherapistName = t.Username
		}
		if p, ok := users[a.ParentID]; ok {
			out[i].ParentName = displayName(p)
		}
	}
	return out
}

func displayName(u *models.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
