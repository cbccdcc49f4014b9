package impl

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/norrisng/FcomServer/internal/domain/entity"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/usecase"
)

// Callsigns are short ASCII tokens; a receiver may instead be a radio
// frequency address: '@' followed by exactly five digits ("@12450" is
// 124.50 MHz).
var (
	callsignPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	frequencyPattern = regexp.MustCompile(`^@[0-9]{5}$`)
)

type relayService struct {
	registrationUC usecase.RegistrationUsecase
	messageRepo    repository.MessageRepository
	txManager      repository.TransactionManager
}

// NewRelayService creates the message admission and dequeue service.
func NewRelayService(
	registrationUC usecase.RegistrationUsecase,
	messageRepo repository.MessageRepository,
	txManager repository.TransactionManager,
) usecase.RelayUsecase {
	return &relayService{
		registrationUC: registrationUC,
		messageRepo:    messageRepo,
		txManager:      txManager,
	}
}

// Submit validates one inbound message and appends it to the queue.
func (s *relayService) Submit(ctx context.Context, input usecase.SubmitInput) error {
	timestamp, err := strconv.ParseInt(strings.TrimSpace(input.Timestamp), 10, 64)
	if err != nil {
		return &usecase.ValidationError{Field: "timestamp", Reason: "timestamp must be an integer (epoch seconds)"}
	}

	if !callsignPattern.MatchString(input.Sender) {
		return &usecase.ValidationError{Field: "sender", Reason: "sender must contain only letters, digits, underscores or hyphens"}
	}

	if !callsignPattern.MatchString(input.Receiver) && !frequencyPattern.MatchString(input.Receiver) {
		return &usecase.ValidationError{Field: "receiver", Reason: "receiver must be a callsign or an '@' followed by five digits"}
	}

	// The binding's existence is the sole admission gate; it is not
	// re-checked at delivery time.
	if _, err := s.registrationUC.LookupByToken(ctx, input.Token); err != nil {
		return err
	}

	msg := &entity.QueuedMessage{
		Token:     input.Token,
		Timestamp: timestamp,
		Sender:    input.Sender,
		Receiver:  input.Receiver, // Stored verbatim; frequencies are rendered at delivery.
		Message:   input.Message,
	}

	if err := s.messageRepo.Insert(ctx, msg); err != nil {
		return fmt.Errorf("failed to enqueue message: %w", err)
	}

	return nil
}

// Drain atomically empties the queue and aggregates the result.
//
// The read and the watermark delete run inside one serializable transaction
// so that messages inserted mid-drain are neither lost nor double-delivered:
// they stay queued for the next tick.
func (s *relayService) Drain(ctx context.Context) ([]*entity.AggregatedMessage, error) {
	var drained []*entity.QueuedMessage

	err := s.txManager.ExecuteIsolated(ctx, sql.LevelSerializable, func(factory repository.RepositoryFactory) error {
		messageRepo := factory.NewMessageRepository()

		msgs, err := messageRepo.ListOrdered(ctx)
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			return nil
		}

		watermark := msgs[len(msgs)-1].ID
		if err := messageRepo.DeleteThrough(ctx, watermark); err != nil {
			return err
		}

		drained = msgs

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("drain transaction failed: %w", err)
	}

	return aggregate(drained), nil
}

// aggregate groups messages by (token, sender), joining bodies with
// newlines in insertion order. Groups are ordered by token, then by their
// first member's insertion ID, so a given snapshot always aggregates
// reproducibly. The receiver is taken from the group's first member;
// senders do not switch receivers within one drain window in practice.
func aggregate(msgs []*entity.QueuedMessage) []*entity.AggregatedMessage {
	type groupKey struct {
		token  string
		sender string
	}

	groups := make(map[groupKey]*entity.AggregatedMessage)

	// msgs arrive ascending by insertion ID, so appending preserves
	// submission order within each group.
	for _, msg := range msgs {
		key := groupKey{token: msg.Token, sender: msg.Sender}

		if group, ok := groups[key]; ok {
			group.Message += "\n" + msg.Message

			continue
		}

		groups[key] = &entity.AggregatedMessage{
			Token:    msg.Token,
			Sender:   msg.Sender,
			Receiver: msg.Receiver,
			Message:  msg.Message,
			FirstID:  msg.ID,
		}
	}

	aggregated := make([]*entity.AggregatedMessage, 0, len(groups))
	for _, group := range groups {
		aggregated = append(aggregated, group)
	}

	sort.Slice(aggregated, func(i, j int) bool {
		if aggregated[i].Token != aggregated[j].Token {
			return aggregated[i].Token < aggregated[j].Token
		}

		return aggregated[i].FirstID < aggregated[j].FirstID
	})

	return aggregated
}
