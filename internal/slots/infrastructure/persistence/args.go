package persistence

import "github.com/felixgeelhaar/slotswap/internal/slots/domain"

func statusArg(status *domain.Status) *string {
	if status == nil {
		return nil
	}
	s := string(*status)
	return &s
}
