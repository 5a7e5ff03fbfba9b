package storage

import (
	"sort"

	"example.com/ai-watch/internal/models"
	"example.com/ai-watch/internal/validation"
)

// ListRecommendations возвращает рекомендации по возрастанию приоритета.
func (s *Store) ListRecommendations() ([]models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	recommendations := make([]models.Recommendation, len(doc.Recommendations))
	copy(recommendations, doc.Recommendations)
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Priority < recommendations[j].Priority
	})

	return recommendations, nil
}

// GetRecommendation возвращает рекомендацию по id, nil при отсутствии.
func (s *Store) GetRecommendation(id string) (*models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	for i := range doc.Recommendations {
		if doc.Recommendations[i].ID == id {
			return &doc.Recommendations[i], nil
		}
	}

	return nil, nil
}

// CreateRecommendation добавляет рекомендацию после проверки ссылок.
func (s *Store) CreateRecommendation(payload map[string]any) (models.Recommendation, error) {
	var rec models.Recommendation

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return rec, err
	}

	rec, err = validation.ParseRecommendation(payload, doc.Accounts, doc.Services)
	if err != nil {
		return rec, err
	}

	for _, existing := range doc.Recommendations {
		if existing.ID == rec.ID {
			return rec, validation.Errorf("recommendation %q already exists", rec.ID)
		}
	}

	doc.Recommendations = append(doc.Recommendations, rec)
	if err := s.write(doc); err != nil {
		return rec, err
	}

	return rec, nil
}

// UpdateRecommendation замещает существующую рекомендацию.
func (s *Store) UpdateRecommendation(id string, payload map[string]any) (models.Recommendation, error) {
	var rec models.Recommendation

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return rec, err
	}

	rec, err = validation.ParseRecommendation(payload, doc.Accounts, doc.Services)
	if err != nil {
		return rec, err
	}
	if rec.ID != id {
		return rec, validation.Errorf("recommendation id in path and payload must match")
	}

	for i := range doc.Recommendations {
		if doc.Recommendations[i].ID == id {
			mergeRecommendationPayload(&rec, doc.Recommendations[i], payload)
			doc.Recommendations[i] = rec
			if err := s.write(doc); err != nil {
				return rec, err
			}
			return rec, nil
		}
	}

	return rec, validation.Errorf("recommendation %q was not found", id)
}

// Ссылки, пропущенные в payload, сохраняются из существующей записи;
// явный null или пустая строка очищает ссылку.
func mergeRecommendationPayload(rec *models.Recommendation, existing models.Recommendation, payload map[string]any) {
	if _, ok := payload["account_id"]; !ok {
		rec.AccountID = existing.AccountID
	}
	if _, ok := payload["service_id"]; !ok {
		rec.ServiceID = existing.ServiceID
	}
}

// DeleteRecommendation удаляет рекомендацию по id.
func (s *Store) DeleteRecommendation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}

	kept := make([]models.Recommendation, 0, len(doc.Recommendations))
	for _, rec := range doc.Recommendations {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(doc.Recommendations) {
		return validation.Errorf("recommendation %q was not found", id)
	}

	doc.Recommendations = kept
	return s.write(doc)
}
