package storage

import (
	"example.com/ai-watch/internal/models"
	"example.com/ai-watch/internal/validation"
)

// ListAccounts возвращает аккаунты с опциональными фильтрами по категории
// сервиса и статусу.
func (s *Store) ListAccounts(category, status string) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	categoryByService := make(map[string]models.Category, len(doc.Services))
	for _, svc := range doc.Services {
		categoryByService[svc.ID] = svc.Category
	}

	filtered := make([]models.Account, 0, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		if status != "" && acc.Status != models.AccountStatus(status) {
			continue
		}
		if category != "" && categoryByService[acc.ServiceID] != models.Category(category) {
			continue
		}
		filtered = append(filtered, acc)
	}

	return filtered, nil
}

// GetAccount возвращает аккаунт по id, nil при отсутствии.
func (s *Store) GetAccount(id string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for i := range doc.Accounts {
		if doc.Accounts[i].ID == id {
			return &doc.Accounts[i], nil
		}
	}

	return nil, nil
}

// CreateAccount добавляет новый аккаунт после валидации ссылки на сервис.
func (s *Store) CreateAccount(payload map[string]any) (models.Account, error) {
	var acc models.Account

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return acc, err
	}

	acc, err = validation.ParseAccount(payload, doc.Services)
	if err != nil {
		return acc, err
	}

	for _, existing := range doc.Accounts {
		if existing.ID == acc.ID {
			return acc, validation.Errorf("account %q already exists", acc.ID)
		}
	}

	doc.Accounts = append(doc.Accounts, acc)
	if err := s.write(doc); err != nil {
		return acc, err
	}

	return acc, nil
}

// UpdateAccount замещает существующий аккаунт провалидированным payload.
func (s *Store) UpdateAccount(id string, payload map[string]any) (models.Account, error) {
	var acc models.Account

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return acc, err
	}

	acc, err = validation.ParseAccount(payload, doc.Services)
	if err != nil {
		return acc, err
	}
	if acc.ID != id {
		return acc, validation.Errorf("account id in path and payload must match")
	}

	for i := range doc.Accounts {
		if doc.Accounts[i].ID == id {
			mergeAccountPayload(&acc, doc.Accounts[i], payload)
			doc.Accounts[i] = acc
			if err := s.write(doc); err != nil {
				return acc, err
			}
			return acc, nil
		}
	}

	return acc, validation.Errorf("account %q was not found", id)
}

// Опциональные поля, пропущенные в payload, сохраняются из существующей
// записи; явный null очищает поле.
func mergeAccountPayload(acc *models.Account, existing models.Account, payload map[string]any) {
	if _, ok := payload["renewal_day"]; !ok {
		acc.RenewalDay = existing.RenewalDay
	}
	if _, ok := payload["notes"]; !ok {
		acc.Notes = existing.Notes
	}
	if _, ok := payload["tags"]; !ok {
		acc.Tags = existing.Tags
	}
}

// DeleteAccount удаляет аккаунт каскадно: его бюджет и рекомендации,
// ссылающиеся на аккаунт, удаляются вместе с ним. Рекомендации только
// с service_id остаются.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	kept := make([]models.Account, 0, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		if acc.ID != id {
			kept = append(kept, acc)
		}
	}
	if len(kept) == len(doc.Accounts) {
		return validation.Errorf("account %q was not found", id)
	}
	doc.Accounts = kept

	budgets := make([]models.UsageBudget, 0, len(doc.UsageBudgets))
	for _, budget := range doc.UsageBudgets {
		if budget.AccountID != id {
			budgets = append(budgets, budget)
		}
	}
	doc.UsageBudgets = budgets

	recommendations := make([]models.Recommendation, 0, len(doc.Recommendations))
	for _, rec := range doc.Recommendations {
		if rec.AccountID != nil && *rec.AccountID == id {
			continue
		}
		recommendations = append(recommendations, rec)
	}
	doc.Recommendations = recommendations

	return s.write(doc)
}
