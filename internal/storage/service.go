package storage

import (
	"example.com/ai-watch/internal/models"
	"example.com/ai-watch/internal/validation"
)

// ListServices возвращает сервисы, опционально отфильтрованные по категории.
func (s *Store) ListServices(category string) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	if category == "" {
		return doc.Services, nil
	}

	filtered := make([]models.Service, 0, len(doc.Services))
	for _, svc := range doc.Services {
		if svc.Category == models.Category(category) {
			filtered = append(filtered, svc)
		}
	}

	return filtered, nil
}

// GetService возвращает сервис по id, nil при отсутствии.
func (s *Store) GetService(id string) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for i := range doc.Services {
		if doc.Services[i].ID == id {
			return &doc.Services[i], nil
		}
	}

	return nil, nil
}

// CreateService добавляет новый сервис после валидации.
func (s *Store) CreateService(payload map[string]any) (models.Service, error) {
	var svc models.Service

	svc, err := validation.ParseService(payload)
	if err != nil {
		return svc, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return svc, err
	}

	for _, existing := range doc.Services {
		if existing.ID == svc.ID {
			return svc, validation.Errorf("service %q already exists", svc.ID)
		}
	}

	doc.Services = append(doc.Services, svc)
	if err := s.write(doc); err != nil {
		return svc, err
	}

	return svc, nil
}

// UpdateService замещает существующий сервис провалидированным payload.
func (s *Store) UpdateService(id string, payload map[string]any) (models.Service, error) {
	var svc models.Service

	svc, err := validation.ParseService(payload)
	if err != nil {
		return svc, err
	}
	if svc.ID != id {
		return svc, validation.Errorf("service id in path and payload must match")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return svc, err
	}

	for i := range doc.Services {
		if doc.Services[i].ID == id {
			mergeServicePayload(&svc, doc.Services[i], payload)
			doc.Services[i] = svc
			if err := s.write(doc); err != nil {
				return svc, err
			}
			return svc, nil
		}
	}

	return svc, validation.Errorf("service %q was not found", id)
}

// Опциональные поля, пропущенные в payload, сохраняются из существующей
// записи; явный null очищает поле.
func mergeServicePayload(svc *models.Service, existing models.Service, payload map[string]any) {
	if _, ok := payload["docs_url"]; !ok {
		svc.DocsURL = existing.DocsURL
	}
	if _, ok := payload["billing_url"]; !ok {
		svc.BillingURL = existing.BillingURL
	}
}

// DeleteService удаляет сервис, если на него не ссылается ни один аккаунт.
func (s *Store) DeleteService(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	for _, acc := range doc.Accounts {
		if acc.ServiceID == id {
			return validation.Errorf("cannot delete a service used by an account")
		}
	}

	kept := make([]models.Service, 0, len(doc.Services))
	for _, svc := range doc.Services {
		if svc.ID != id {
			kept = append(kept, svc)
		}
	}
	if len(kept) == len(doc.Services) {
		return validation.Errorf("service %q was not found", id)
	}

	doc.Services = kept
	return s.write(doc)
}
