package storage

import (
	"example.com/ai-watch/internal/models"
	"example.com/ai-watch/internal/validation"
)

// ListBudgets возвращает все бюджеты.
func (s *Store) ListBudgets() ([]models.UsageBudget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	return doc.UsageBudgets, nil
}

// GetBudget возвращает бюджет по id, nil при отсутствии.
func (s *Store) GetBudget(id string) (*models.UsageBudget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for i := range doc.UsageBudgets {
		if doc.UsageBudgets[i].ID == id {
			return &doc.UsageBudgets[i], nil
		}
	}

	return nil, nil
}

// CreateBudget добавляет бюджет; на аккаунт допускается не более одного.
func (s *Store) CreateBudget(payload map[string]any) (models.UsageBudget, error) {
	var budget models.UsageBudget

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return budget, err
	}

	budget, err = validation.ParseBudget(payload, doc.Accounts)
	if err != nil {
		return budget, err
	}

	for _, existing := range doc.UsageBudgets {
		if existing.ID == budget.ID {
			return budget, validation.Errorf("budget %q already exists", budget.ID)
		}
	}
	for _, existing := range doc.UsageBudgets {
		if existing.AccountID == budget.AccountID {
			return budget, validation.Errorf("account %q already has a budget", budget.AccountID)
		}
	}

	doc.UsageBudgets = append(doc.UsageBudgets, budget)
	if err := s.write(doc); err != nil {
		return budget, err
	}

	return budget, nil
}

// UpdateBudget замещает существующий бюджет; правило "один бюджет на аккаунт"
// проверяется и при смене account_id.
func (s *Store) UpdateBudget(id string, payload map[string]any) (models.UsageBudget, error) {
	var budget models.UsageBudget

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return budget, err
	}

	budget, err = validation.ParseBudget(payload, doc.Accounts)
	if err != nil {
		return budget, err
	}
	if budget.ID != id {
		return budget, validation.Errorf("budget id in path and payload must match")
	}

	index := -1
	for i := range doc.UsageBudgets {
		if doc.UsageBudgets[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return budget, validation.Errorf("budget %q was not found", id)
	}

	for _, existing := range doc.UsageBudgets {
		if existing.ID != id && existing.AccountID == budget.AccountID {
			return budget, validation.Errorf("account %q already has a budget", budget.AccountID)
		}
	}

	doc.UsageBudgets[index] = budget
	if err := s.write(doc); err != nil {
		return budget, err
	}

	return budget, nil
}

// DeleteBudget удаляет бюджет по id.
func (s *Store) DeleteBudget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	kept := make([]models.UsageBudget, 0, len(doc.UsageBudgets))
	for _, budget := range doc.UsageBudgets {
		if budget.ID != id {
			kept = append(kept, budget)
		}
	}
	if len(kept) == len(doc.UsageBudgets) {
		return validation.Errorf("budget %q was not found", id)
	}

	doc.UsageBudgets = kept
	return s.write(doc)
}
