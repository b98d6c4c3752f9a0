package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/vignesh-sundaramoorthi/identity-sprint/internal/model"
)

func uintPtr(v uint) *uint { return &v }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type fakeChallenges struct {
	byID   map[uint]*model.Challenge
	habits map[uint]*model.Habit
	nextID uint
	// createErrs is consumed one error per Create call before succeeding.
	createErrs []error
}

func newFakeChallenges(habits *fakeHabits) *fakeChallenges {
	f := &fakeChallenges{byID: map[uint]*model.Challenge{}, nextID: 1}
	if habits != nil {
		f.habits = habits.byID
	}
	return f
}

func (f *fakeChallenges) add(ch model.Challenge) *model.Challenge {
	if ch.ID == 0 {
		ch.ID = f.nextID
	}
	if ch.ID >= f.nextID {
		f.nextID = ch.ID + 1
	}
	if ch.Status == "" {
		ch.Status = model.ChallengeActive
	}
	f.byID[ch.ID] = &ch
	return &ch
}

func (f *fakeChallenges) loaded(ch *model.Challenge) *model.Challenge {
	out := *ch
	if f.habits != nil {
		out.Habit1 = f.habits[deref(out.Habit1ID)]
		out.Habit2 = f.habits[deref(out.Habit2ID)]
		out.Habit3 = f.habits[deref(out.Habit3ID)]
		out.Habit4 = f.habits[deref(out.Habit4ID)]
		out.Habit5 = f.habits[deref(out.Habit5ID)]
	}
	return &out
}

func deref(id *uint) uint {
	if id == nil {
		return 0
	}
	return *id
}

func (f *fakeChallenges) Create(ch *model.Challenge) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	for _, existing := range f.byID {
		if existing.Token == ch.Token {
			return gorm.ErrDuplicatedKey
		}
	}
	ch.ID = f.nextID
	f.nextID++
	stored := *ch
	f.byID[ch.ID] = &stored
	return nil
}

func (f *fakeChallenges) FindByToken(token string) (*model.Challenge, error) {
	for _, ch := range f.byID {
		if ch.Token == token {
			return f.loaded(ch), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeChallenges) FindByID(id uint) (*model.Challenge, error) {
	ch, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.loaded(ch), nil
}

func (f *fakeChallenges) sorted() []model.Challenge {
	out := make([]model.Challenge, 0, len(f.byID))
	for _, ch := range f.byID {
		out = append(out, *f.loaded(ch))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f *fakeChallenges) List() ([]model.Challenge, error) {
	return f.sorted(), nil
}

func (f *fakeChallenges) ListActive() ([]model.Challenge, error) {
	var out []model.Challenge
	for _, ch := range f.sorted() {
		if ch.Status == model.ChallengeActive {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeChallenges) ListActiveByDuration(durationDays, limit int) ([]model.Challenge, error) {
	var out []model.Challenge
	for _, ch := range f.sorted() {
		if ch.Status == model.ChallengeActive && ch.DurationDays == durationDays && len(out) < limit {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeChallenges) UpdateSetup(id uint, durationDays int, habitIDs [model.MaxSlots]*uint) error {
	ch, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ch.DurationDays = durationDays
	ch.SetHabitIDs(habitIDs)
	return nil
}

func (f *fakeChallenges) UpdateStatus(id uint, status model.ChallengeStatus) error {
	ch, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ch.Status = status
	return nil
}

// fakeCheckins keys rows by (challenge, date) like the unique index does.
type fakeCheckins struct {
	rows   []model.DailyCheckin
	nextID uint
}

func (f *fakeCheckins) Upsert(c *model.DailyCheckin) error {
	for i := range f.rows {
		r := &f.rows[i]
		if r.ChallengeID == c.ChallengeID && r.CheckDate.Equal(c.CheckDate) {
			id := r.ID
			*r = *c
			r.ID = id
			return nil
		}
	}
	f.nextID++
	c.ID = f.nextID
	f.rows = append(f.rows, *c)
	return nil
}

func (f *fakeCheckins) FindByChallengeAndDate(challengeID uint, date model.Date) (*model.DailyCheckin, error) {
	for i := range f.rows {
		if f.rows[i].ChallengeID == challengeID && f.rows[i].CheckDate.Equal(date) {
			c := f.rows[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCheckins) ListByChallenge(challengeID uint) ([]model.DailyCheckin, error) {
	return f.ListByChallenges([]uint{challengeID})
}

func (f *fakeCheckins) ListByChallenges(challengeIDs []uint) ([]model.DailyCheckin, error) {
	want := map[uint]bool{}
	for _, id := range challengeIDs {
		want[id] = true
	}
	var out []model.DailyCheckin
	for _, r := range f.rows {
		if want[r.ChallengeID] {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CheckDate.Before(out[j].CheckDate) })
	return out, nil
}

type fakeHabits struct {
	byID    map[uint]*model.Habit
	domains []model.HabitDomain
	nextID  uint
}

func newFakeHabits(habits ...model.Habit) *fakeHabits {
	f := &fakeHabits{byID: map[uint]*model.Habit{}, nextID: 1}
	for i := range habits {
		h := habits[i]
		f.byID[h.ID] = &h
		if h.ID >= f.nextID {
			f.nextID = h.ID + 1
		}
	}
	return f
}

func (f *fakeHabits) List() ([]model.Habit, error) {
	out := make([]model.Habit, 0, len(f.byID))
	for _, h := range f.byID {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeHabits) ListDomains() ([]model.HabitDomain, error) { return f.domains, nil }

func (f *fakeHabits) FindByID(id uint) (*model.Habit, error) {
	h, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *h
	return &c, nil
}

func (f *fakeHabits) CountByIDs(ids []uint) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := f.byID[id]; ok {
			n++
		}
	}
	return n, nil
}

func (f *fakeHabits) Create(h *model.Habit) error {
	h.ID = f.nextID
	f.nextID++
	c := *h
	f.byID[h.ID] = &c
	return nil
}

func (f *fakeHabits) Update(id uint, updates map[string]interface{}) error {
	h, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "name":
			h.Name = v.(string)
		case "difficulty":
			h.Difficulty = v.(model.Difficulty)
		case "simpler_version":
			h.SimplerVersion = v.(*string)
		case "description":
			h.Description = v.(*string)
		case "domain_id":
			id := v.(uint)
			h.DomainID = &id
		}
	}
	return nil
}

func (f *fakeHabits) Delete(id uint) error {
	if _, ok := f.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeIdentity struct {
	declarations map[uint]model.IdentityDeclaration
	checkins     []model.IdentityCheckin
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{declarations: map[uint]model.IdentityDeclaration{}}
}

func (f *fakeIdentity) FindDeclaration(challengeID uint) (*model.IdentityDeclaration, error) {
	d, ok := f.declarations[challengeID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (f *fakeIdentity) UpsertDeclaration(d *model.IdentityDeclaration) error {
	f.declarations[d.ChallengeID] = *d
	return nil
}

func (f *fakeIdentity) FindCheckin(challengeID uint, week int) (*model.IdentityCheckin, error) {
	for _, c := range f.checkins {
		if c.ChallengeID == challengeID && c.WeekNumber == week {
			c := c
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIdentity) ListCheckins(challengeID uint) ([]model.IdentityCheckin, error) {
	var out []model.IdentityCheckin
	for _, c := range f.checkins {
		if c.ChallengeID == challengeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeIdentity) UpsertCheckin(c *model.IdentityCheckin) error {
	for i := range f.checkins {
		if f.checkins[i].ChallengeID == c.ChallengeID && f.checkins[i].WeekNumber == c.WeekNumber {
			f.checkins[i] = *c
			return nil
		}
	}
	f.checkins = append(f.checkins, *c)
	return nil
}

type fakeGroups struct {
	groups     map[uint]*model.Group
	members    []model.GroupMember
	challenges *fakeChallenges
	nextID     uint
	createErrs []error
}

func newFakeGroups(challenges *fakeChallenges) *fakeGroups {
	return &fakeGroups{groups: map[uint]*model.Group{}, challenges: challenges, nextID: 1}
}

func (f *fakeGroups) Create(g *model.Group) error {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return err
	}
	g.ID = f.nextID
	f.nextID++
	c := *g
	f.groups[g.ID] = &c
	return nil
}

func (f *fakeGroups) FindByInviteCode(code string) (*model.Group, error) {
	for _, g := range f.groups {
		if g.InviteCode == code {
			c := *g
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroups) FindMembership(challengeID uint) (*model.GroupMember, error) {
	for _, m := range f.members {
		if m.ChallengeID == challengeID {
			m.Group = f.groups[m.GroupID]
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeGroups) AddMember(m *model.GroupMember) error {
	for _, existing := range f.members {
		if existing.ChallengeID == m.ChallengeID {
			return gorm.ErrDuplicatedKey
		}
	}
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeGroups) ListMembers(groupID uint) ([]model.GroupMember, error) {
	var out []model.GroupMember
	for _, m := range f.members {
		if m.GroupID != groupID {
			continue
		}
		if ch, err := f.challenges.FindByID(m.ChallengeID); err == nil {
			m.Challenge = ch
		}
		out = append(out, m)
	}
	return out, nil
}

type fakeDiscovery struct {
	rows []model.DiscoveryResponse
	err  error
}

func (f *fakeDiscovery) Create(d *model.DiscoveryResponse) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *d)
	return nil
}

func (f *fakeDiscovery) List() ([]model.DiscoveryResponse, error) { return f.rows, nil }

type fakeUsers struct {
	users     map[string]*model.User
	lastLogin map[uint]time.Time
}

func (f *fakeUsers) FindByEmail(email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) UpdateLastLogin(id uint, at time.Time) error {
	if f.lastLogin == nil {
		f.lastLogin = map[uint]time.Time{}
	}
	f.lastLogin[id] = at
	return nil
}

type fakeNotifier struct {
	mu           sync.Mutex
	milestones   []MilestoneNotice
	lowAdherence []LowAdherenceNotice
	err          error
}

func (f *fakeNotifier) MilestoneReached(_ context.Context, n MilestoneNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.milestones = append(f.milestones, n)
	return f.err
}

func (f *fakeNotifier) LowAdherence(_ context.Context, n LowAdherenceNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lowAdherence = append(f.lowAdherence, n)
	return f.err
}

type fakeUploader struct {
	filename    string
	contentType string
	body        []byte
}

func (f *fakeUploader) Upload(_ context.Context, filename string, r io.Reader, _ int64, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	f.filename, f.contentType, f.body = filename, contentType, buf.Bytes()
	return "/exports/" + filename, nil
}

type fakeApplications struct {
	byEmail map[string]*model.Application
}

func (f fakeApplications) LatestByEmail(_ context.Context, email string) (*model.Application, error) {
	return f.byEmail[email], nil
}
