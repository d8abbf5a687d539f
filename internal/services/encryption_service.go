package services

import (
	"strings"

	"daytrack/internal/crypto"
	"daytrack/internal/models"
)

// EncryptionService applies the sealer to the fields that are private at rest:
// user email and journal content.
type EncryptionService struct {
	sealer *crypto.Sealer
}

func NewEncryptionService(encryptionKey, blindIndexKey []byte) (*EncryptionService, error) {
	sealer, err := crypto.NewSealer(encryptionKey, blindIndexKey)
	if err != nil {
		return nil, err
	}
	return &EncryptionService{sealer: sealer}, nil
}

// EmailBlindIndex normalises the address so lookups ignore case and padding.
func (s *EncryptionService) EmailBlindIndex(email string) string {
	return s.sealer.BlindIndex(strings.ToLower(strings.TrimSpace(email)))
}

// EncryptUser seals the email and fills the blind index before the user is stored.
func (s *EncryptionService) EncryptUser(user *models.User) error {
	sealed, err := s.sealer.Seal(strings.TrimSpace(user.Email))
	if err != nil {
		return err
	}
	user.EmailBlindIndex = s.EmailBlindIndex(user.Email)
	user.Email = sealed
	return nil
}

func (s *EncryptionService) DecryptUser(user *models.User) error {
	email, err := s.sealer.Open(user.Email)
	if err != nil {
		return err
	}
	user.Email = email
	return nil
}

func (s *EncryptionService) EncryptEntry(entry *models.JournalEntry) error {
	sealed, err := s.sealer.Seal(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = sealed
	return nil
}

func (s *EncryptionService) DecryptEntry(entry *models.JournalEntry) error {
	content, err := s.sealer.Open(entry.Content)
	if err != nil {
		return err
	}
	entry.Content = content
	return nil
}

// DecryptEntries opens every entry in place.
func (s *EncryptionService) DecryptEntries(entries []models.JournalEntry) error {
	for i := range entries {
		if err := s.DecryptEntry(&entries[i]); err != nil {
			return err
		}
	}
	return nil
}
