// Package store persists the group binding and member registrations in a
// remote Redis-compatible key-value store.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store defines the key-value operations used by the bot.
// Every method propagates the underlying store error; nothing is retried or cached.
type Store interface {
	// Ping checks the store connection.
	Ping(ctx context.Context) error

	// GetGroupID returns the bound group chat id. ok is false when no group is bound.
	GetGroupID(ctx context.Context) (id int64, ok bool, err error)

	// SetGroupID unconditionally writes the group chat id.
	SetGroupID(ctx context.Context, id int64) error

	// BindGroup writes the group chat id only if none is bound yet and reports
	// whether this call created the binding.
	BindGroup(ctx context.Context, id int64) (bool, error)

	// SaveMember adds the member to the Membership Set and, if it was not
	// there yet, writes the full Member Record with dm_ready reset and a fresh
	// timestamp. Both steps run atomically. It reports whether the member was added.
	SaveMember(ctx context.Context, m Member) (bool, error)

	// IsMember tests membership in the Membership Set.
	IsMember(ctx context.Context, id int64) (bool, error)

	// MarkDMReady sets only the dm_ready field of the Member Record.
	MarkDMReady(ctx context.Context, id int64) error

	// GetMember returns the Member Record, or nil if the hash does not exist.
	GetMember(ctx context.Context, id int64) (*Member, error)

	// MemberStatus derives the registration status of a user.
	MemberStatus(ctx context.Context, id int64) (Status, error)

	// CountMembers returns the size of the Membership Set.
	CountMembers(ctx context.Context) (int64, error)
}

// saveMemberScript adds the id to the set and writes the record only when
// SADD reports a new member.
var saveMemberScript = redis.NewScript(`
if redis.call('SADD', KEYS[1], ARGV[1]) == 0 then
  return 0
end
redis.call('HSET', KEYS[2], 'id', ARGV[1], 'name', ARGV[2], 'username', ARGV[3], 'dm_ready', ARGV[4], 'registered_at', ARGV[5])
return 1
`)

type redisStore struct {
	client redis.UniversalClient
	keys   keys
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a Store backed by a Redis client. All keys are created
// under prefix.
func NewStore(client redis.UniversalClient, prefix string, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &redisStore{
		client: client,
		keys:   keys{prefix: prefix},
		logger: logger.With("component", "store"),
		now:    time.Now,
	}
}

func (s *redisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping store: %w", err)
	}
	return nil
}

func (s *redisStore) GetGroupID(ctx context.Context) (int64, bool, error) {
	raw, err := s.client.Get(ctx, s.keys.groupID()).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get group id: %w", err)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid group id %q in store: %w", raw, err)
	}
	return id, true, nil
}

func (s *redisStore) SetGroupID(ctx context.Context, id int64) error {
	if err := s.client.Set(ctx, s.keys.groupID(), strconv.FormatInt(id, 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to set group id %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Group id written", "group_id", id)
	return nil
}

func (s *redisStore) BindGroup(ctx context.Context, id int64) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keys.groupID(), strconv.FormatInt(id, 10), 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to bind group %d: %w", id, err)
	}
	if ok {
		s.logger.InfoContext(ctx, "Group bound", "group_id", id)
	}
	return ok, nil
}

func (s *redisStore) SaveMember(ctx context.Context, m Member) (bool, error) {
	if m.ID == 0 {
		return false, fmt.Errorf("member must have a non-zero id")
	}

	id := strconv.FormatInt(m.ID, 10)
	registeredAt := s.now().UTC().Format(time.RFC3339)

	added, err := saveMemberScript.Run(ctx, s.client,
		[]string{s.keys.members(), s.keys.member(m.ID)},
		id, m.Name, m.Username, dmNotReady, registeredAt,
	).Int()
	if err != nil {
		return false, fmt.Errorf("failed to save member %d: %w", m.ID, err)
	}

	if added == 0 {
		s.logger.DebugContext(ctx, "Member already in set, record left unchanged", "user_id", m.ID)
		return false, nil
	}
	s.logger.InfoContext(ctx, "Member saved", "user_id", m.ID)
	return true, nil
}

func (s *redisStore) IsMember(ctx context.Context, id int64) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.keys.members(), strconv.FormatInt(id, 10)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check membership of %d: %w", id, err)
	}
	return ok, nil
}

func (s *redisStore) MarkDMReady(ctx context.Context, id int64) error {
	if err := s.client.HSet(ctx, s.keys.member(id), fieldDMReady, dmReady).Err(); err != nil {
		return fmt.Errorf("failed to mark dm ready for %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "Member marked dm ready", "user_id", id)
	return nil
}

func (s *redisStore) GetMember(ctx context.Context, id int64) (*Member, error) {
	fields, err := s.client.HGetAll(ctx, s.keys.member(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get member %d: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	m := &Member{
		ID:       id,
		Name:     fields[fieldName],
		Username: fields[fieldUsername],
		DMReady:  fields[fieldDMReady] == dmReady,
	}
	if raw := fields[fieldRegisteredAt]; raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			s.logger.WarnContext(ctx, "Invalid registration timestamp in member record", "user_id", id, "value", raw)
		} else {
			m.RegisteredAt = ts
		}
	}
	return m, nil
}

func (s *redisStore) MemberStatus(ctx context.Context, id int64) (Status, error) {
	registered, err := s.IsMember(ctx, id)
	if err != nil {
		return StatusUnregistered, err
	}
	if !registered {
		return StatusUnregistered, nil
	}

	flag, err := s.client.HGet(ctx, s.keys.member(id), fieldDMReady).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return StatusUnregistered, fmt.Errorf("failed to read dm flag of %d: %w", id, err)
	}
	if flag == dmReady {
		return StatusRegisteredDMReady, nil
	}
	return StatusRegisteredNoDM, nil
}

func (s *redisStore) CountMembers(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, s.keys.members()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return n, nil
}
