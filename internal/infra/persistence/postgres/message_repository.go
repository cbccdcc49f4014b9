package postgres

import (
	"context"

	"github.com/norrisng/FcomServer/internal/domain/entity"
	domainerrors "github.com/norrisng/FcomServer/internal/domain/errors"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// messageRepository implements the repository.MessageRepository interface.
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository is the constructor for messageRepository.
func NewMessageRepository(db *gorm.DB) repository.MessageRepository {
	return &messageRepository{
		db: db,
	}
}

// Insert appends a message to the queue.
func (repo *messageRepository) Insert(ctx context.Context, msg *entity.QueuedMessage) error {
	msgM := fromMessageDomain(msg)

	if err := repo.db.WithContext(ctx).Create(msgM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required message fields")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert message")
	}

	// Propagate the store-assigned insertion order back to the entity.
	msg.ID = msgM.ID
	msg.InsertTime = msgM.InsertTime

	return nil
}

// ListOrdered returns every queued message, ascending by insertion ID.
func (repo *messageRepository) ListOrdered(ctx context.Context) ([]*entity.QueuedMessage, error) {
	var msgModels []*model.QueuedMessageModel

	if err := repo.db.WithContext(ctx).
		Order("id ASC").
		Find(&msgModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list queued messages")
	}

	msgs := make([]*entity.QueuedMessage, 0, len(msgModels))
	for _, msgM := range msgModels {
		msgs = append(msgs, toMessageDomain(msgM))
	}

	return msgs, nil
}

// DeleteThrough removes every message with insertion ID <= watermark.
func (repo *messageRepository) DeleteThrough(ctx context.Context, watermark int64) error {
	if err := repo.db.WithContext(ctx).
		Where("id <= ?", watermark).
		Delete(&model.QueuedMessageModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete drained messages")
	}

	return nil
}

// toMessageDomain converts a GORM QueuedMessageModel to a domain entity.
func toMessageDomain(data *model.QueuedMessageModel) *entity.QueuedMessage {
	if data == nil {
		return nil
	}

	return &entity.QueuedMessage{
		ID:         data.ID,
		InsertTime: data.InsertTime,
		Token:      data.Token,
		Timestamp:  data.Timestamp,
		Sender:     data.Sender,
		Receiver:   data.Receiver,
		Message:    data.Message,
	}
}

// fromMessageDomain converts a domain entity to a GORM QueuedMessageModel.
func fromMessageDomain(data *entity.QueuedMessage) *model.QueuedMessageModel {
	if data == nil {
		return nil
	}

	return &model.QueuedMessageModel{
		ID:         data.ID,
		InsertTime: data.InsertTime,
		Token:      data.Token,
		Timestamp:  data.Timestamp,
		Sender:     data.Sender,
		Receiver:   data.Receiver,
		Message:    data.Message,
	}
}
