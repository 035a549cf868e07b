package health

import "cv-backend/internal/shared/storage/memdb"

// Service encapsulates health-related checks.
type Service struct {
	DB *memdb.DB
}

// NewService constructs a new health service.
func NewService(db *memdb.DB) *Service {
	return &Service{DB: db}
}

// Status returns a simple health payload including store connectivity.
func (s *Service) Status() map[string]any {
	connected := s.DB != nil && s.DB.IsConnected()
	return map[string]any{
		"ok":             true,
		"storeConnected": connected,
	}
}
