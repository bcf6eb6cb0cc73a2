package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gongobongo-backend-go/internal/db"
	"gongobongo-backend-go/internal/models"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users       map[string]*models.User
	upsertErr   error
	deletedUIDs []string
	online      map[string]bool
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}, online: map[string]bool{}}
	for _, u := range users {
		r.users[u.UID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	u, ok := r.users[uid]
	if !ok {
		return nil, fmt.Errorf("user '%s': %w", uid, db.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *models.User) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	cp := *user
	r.users[user.UID] = &cp
	return nil
}

func (r *fakeUserRepo) ListExcept(_ context.Context, uid string) ([]*models.User, error) {
	var out []*models.User
	for id, u := range r.users {
		if id == uid {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out, nil
}

func (r *fakeUserRepo) SetOnline(_ context.Context, uid string, online bool) error {
	if _, ok := r.users[uid]; !ok {
		return fmt.Errorf("user '%s': %w", uid, db.ErrNotFound)
	}
	r.online[uid] = online
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, uid string) error {
	delete(r.users, uid)
	r.deletedUIDs = append(r.deletedUIDs, uid)
	return nil
}

type fakeChatRepo struct {
	chats     map[string]*models.Chat
	nextID    int
	createErr error
}

func newFakeChatRepo(chats ...*models.Chat) *fakeChatRepo {
	r := &fakeChatRepo{chats: map[string]*models.Chat{}}
	for _, c := range chats {
		r.chats[c.ID] = c
	}
	return r
}

func (r *fakeChatRepo) Create(_ context.Context, chat *models.Chat) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.nextID++
	chat.ID = fmt.Sprintf("chat-%d", r.nextID)
	cp := *chat
	r.chats[chat.ID] = &cp
	return chat.ID, nil
}

func (r *fakeChatRepo) GetByID(_ context.Context, chatID string) (*models.Chat, error) {
	c, ok := r.chats[chatID]
	if !ok {
		return nil, fmt.Errorf("chat '%s': %w", chatID, db.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChatRepo) FindDirect(_ context.Context, uidA, uidB string) (*models.Chat, error) {
	for _, c := range r.chats {
		if !c.IsGroup && len(c.Participants) == 2 && c.HasParticipant(uidA) && c.HasParticipant(uidB) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeChatRepo) ListByParticipant(_ context.Context, uid string) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, c := range r.chats {
		if c.HasParticipant(uid) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) ListPendingFor(_ context.Context, uid string) ([]*models.Chat, error) {
	var out []*models.Chat
	for _, c := range r.chats {
		if c.Status == models.ChatStatusPending && c.HasParticipant(uid) && c.InitiatedBy != uid {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChatRepo) SetStatus(_ context.Context, chatID, status string) error {
	c, ok := r.chats[chatID]
	if !ok {
		return db.ErrNotFound
	}
	c.Status = status
	return nil
}

type fakeMessageRepo struct {
	byChat    map[string][]*models.Message
	nextID    int
	appendErr error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{byChat: map[string][]*models.Message{}}
}

func (r *fakeMessageRepo) Append(_ context.Context, chatID string, msg *models.Message) (string, error) {
	if r.appendErr != nil {
		return "", r.appendErr
	}
	r.nextID++
	msg.ID = fmt.Sprintf("msg-%d", r.nextID)
	msg.Timestamp = time.Now()
	cp := *msg
	r.byChat[chatID] = append(r.byChat[chatID], &cp)
	return msg.ID, nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, chatID, messageID string) (*models.Message, error) {
	for _, m := range r.byChat[chatID] {
		if m.ID == messageID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, db.ErrNotFound
}

func (r *fakeMessageRepo) ListByChatID(_ context.Context, chatID string) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range r.byChat[chatID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMessageRepo) HasMessageFrom(_ context.Context, chatID, senderID string) (bool, error) {
	for _, m := range r.byChat[chatID] {
		if m.SenderID == senderID {
			return true, nil
		}
	}
	return false, nil
}

type fakeSettingsRepo struct {
	settings map[string]*models.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[string]*models.UserSettings{}}
}

func (r *fakeSettingsRepo) Get(_ context.Context, uid string) (*models.UserSettings, error) {
	s, ok := r.settings[uid]
	if !ok {
		return nil, fmt.Errorf("settings '%s': %w", uid, db.ErrNotFound)
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingsRepo) Set(_ context.Context, settings *models.UserSettings) error {
	cp := *settings
	r.settings[settings.UID] = &cp
	return nil
}

type fakePresenceRepo struct {
	statuses map[string]*models.PresenceStatus
	setErr   error
}

func newFakePresenceRepo() *fakePresenceRepo {
	return &fakePresenceRepo{statuses: map[string]*models.PresenceStatus{}}
}

func (r *fakePresenceRepo) SetStatus(_ context.Context, uid string, status *models.PresenceStatus) error {
	if r.setErr != nil {
		return r.setErr
	}
	cp := *status
	r.statuses[uid] = &cp
	return nil
}

func (r *fakePresenceRepo) GetStatus(_ context.Context, uid string) (*models.PresenceStatus, error) {
	s, ok := r.statuses[uid]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakePresenceRepo) ListOnlineBefore(_ context.Context, cutoff time.Time) ([]string, error) {
	var out []string
	for uid, s := range r.statuses {
		if s.IsOnline && s.LastSeen < cutoff.UnixMilli() {
			out = append(out, uid)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakePresenceRepo) Remove(_ context.Context, uid string) error {
	delete(r.statuses, uid)
	return nil
}

// fakeGenerator scripts the TextGenerator collaborator.
type fakeGenerator struct {
	summary     string
	suggestions []string
	botText     string
	err         error
	botCalls    int
}

func (g *fakeGenerator) Summarize(context.Context, string) (string, error) {
	return g.summary, g.err
}

func (g *fakeGenerator) SuggestReplies(context.Context, string) ([]string, error) {
	return g.suggestions, g.err
}

func (g *fakeGenerator) BotReply(context.Context, string) (string, error) {
	g.botCalls++
	return g.botText, g.err
}

// fakePublisher records published events.
type fakePublisher struct {
	queue  string
	bodies [][]byte
	err    error
}

func (p *fakePublisher) Publish(queueName string, body []byte) error {
	if p.err != nil {
		return p.err
	}
	p.queue = queueName
	p.bodies = append(p.bodies, body)
	return nil
}

// fakeAccounts records auth admin calls.
type fakeAccounts struct {
	updated map[string][2]string
	deleted []string
	err     error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{updated: map[string][2]string{}}
}

func (a *fakeAccounts) UpdateAccount(_ context.Context, uid, displayName, photoURL string) error {
	if a.err != nil {
		return a.err
	}
	a.updated[uid] = [2]string{displayName, photoURL}
	return nil
}

func (a *fakeAccounts) DeleteAccount(_ context.Context, uid string) error {
	if a.err != nil {
		return a.err
	}
	a.deleted = append(a.deleted, uid)
	return nil
}

// fakeMailer records sent emails.
type fakeMailer struct {
	recipients []string
	subjects   []string
	err        error
}

func (m *fakeMailer) Send(recipient, subject, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.recipients = append(m.recipients, recipient)
	m.subjects = append(m.subjects, subject)
	return nil
}

// fakeCache is an in-memory cache.Cache.
type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(key string) (string, error) {
	return c.values[key], nil
}

func (c *fakeCache) Set(key string, value interface{}, _ time.Duration) error {
	s, ok := value.(string)
	if !ok {
		return errors.New("fakeCache only stores strings")
	}
	c.values[key] = s
	return nil
}

func (c *fakeCache) Delete(key string) error {
	delete(c.values, key)
	return nil
}
