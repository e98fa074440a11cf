// Package localstore is the degraded-mode tier of the persistence gateway: a
// small embedded sqlite file that mirrors every successful write and serves
// reads when the document store is unreachable. Remote wins when reachable;
// the mirror is a best-effort copy, never the source of truth.
package localstore

import (
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when the mirror holds no copy of the record.
var ErrNotFound = errors.New("not in local mirror")

// QuizMirror holds one quiz document plus the columns the visibility filter
// needs without unmarshalling every row.
type QuizMirror struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    string `gorm:"index;size:64"`
	IsPublic  bool
	CreatedAt int64 `gorm:"index"`
	Doc       []byte
}

// AttemptMirror is append-only, like the attempts collection it shadows.
type AttemptMirror struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	QuizID      string `gorm:"index;size:64"`
	CompletedAt int64  `gorm:"index"`
	Doc         []byte
}

// SharedQuizID is one entry of the per-client share registry: a quiz id this
// client discovered through a share link.
type SharedQuizID struct {
	ClientID string `gorm:"primaryKey;size:64"`
	QuizID   string `gorm:"primaryKey;size:64"`
}

type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&QuizMirror{}, &AttemptMirror{}, &SharedQuizID{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// PutQuiz mirrors a quiz document, replacing any prior copy.
func (s *Store) PutQuiz(id, userID string, isPublic bool, createdAt int64, doc []byte) error {
	row := QuizMirror{ID: id, UserID: userID, IsPublic: isPublic, CreatedAt: createdAt, Doc: doc}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&row).Error
}

func (s *Store) QuizDoc(id string) ([]byte, error) {
	var row QuizMirror
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row.Doc, nil
}

// QuizDocs returns mirrored documents under the same visibility rule the
// remote store applies: owned by userID, demo-owned, or public; newest first.
func (s *Store) QuizDocs(userID, demoUserID string) ([][]byte, error) {
	var rows []QuizMirror
	q := s.db.Order("created_at DESC")
	if userID != "" {
		q = q.Where("user_id = ? OR user_id = ? OR is_public = ?", userID, demoUserID, true)
	} else {
		q = q.Where("user_id = ? OR is_public = ?", demoUserID, true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([][]byte, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.Doc)
	}
	return docs, nil
}

func (s *Store) RemoveQuiz(id string) error {
	return s.db.Delete(&QuizMirror{}, "id = ?", id).Error
}

func (s *Store) AppendAttempt(quizID string, completedAt int64, doc []byte) error {
	row := AttemptMirror{QuizID: quizID, CompletedAt: completedAt, Doc: doc}
	return s.db.Create(&row).Error
}

func (s *Store) AttemptDocs(quizID string) ([][]byte, error) {
	var rows []AttemptMirror
	if err := s.db.
		Where("quiz_id = ?", quizID).
		Order("completed_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([][]byte, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, row.Doc)
	}
	return docs, nil
}

// AddSharedQuizID registers a discovered quiz id for a client. Idempotent.
func (s *Store) AddSharedQuizID(clientID, quizID string) error {
	row := SharedQuizID{ClientID: clientID, QuizID: quizID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (s *Store) SharedQuizIDs(clientID string) ([]string, error) {
	var rows []SharedQuizID
	if err := s.db.Where("client_id = ?", clientID).Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.QuizID)
	}
	return ids, nil
}

func (s *Store) RemoveSharedQuizID(clientID, quizID string) error {
	return s.db.Delete(&SharedQuizID{}, "client_id = ? AND quiz_id = ?", clientID, quizID).Error
}
