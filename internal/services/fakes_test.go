package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/ecolemusique/backoffice/internal/models"
	"github.com/ecolemusique/backoffice/internal/providers/identity"
	"github.com/ecolemusique/backoffice/internal/utils"
)

type fakeIdentity struct {
	*identity.Memory
	createErr error
	deleteErr error
	deleted   []string
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password string) (*models.Identity, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.Memory.CreateUser(ctx, email, password)
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{Memory: identity.NewMemory(4)}
}

func (f *fakeIdentity) DeleteUser(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.Memory.DeleteUser(ctx, id)
}

type fakeProfiles struct {
	mu        sync.Mutex
	rows      map[string]models.Profile
	createErr error
	deleteErr error
	calls     []string
	// listed, when set, is returned by List as the database would order it.
	listed    []models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: map[string]models.Profile{}}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return f.createErr
	}
	p.CreatedAt = time.Now().UTC()
	f.rows[p.ID] = *p
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[p.ID]
	if !ok {
		return utils.ErrNotFound
	}
	cur.FirstName, cur.LastName, cur.Role = p.FirstName, p.LastName, p.Role
	f.rows[p.ID] = cur
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) List(context.Context) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listed != nil {
		return append([]models.Profile(nil), f.listed...), nil
	}
	out := make([]models.Profile, 0, len(f.rows))
	for _, p := range f.rows {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FirstName < out[j].FirstName })
	return out, nil
}

func (f *fakeProfiles) Summary(_ context.Context, id string) (*models.ProfileSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &models.ProfileSummary{Profile: p}, nil
}

func (f *fakeProfiles) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.rows, id)
	return nil
}

type fakeUsers struct {
	roles map[string]models.Role
	err   error
}

func (f *fakeUsers) RoleOf(_ context.Context, id string) (models.Role, error) {
	if f.err != nil {
		return "", f.err
	}
	r, ok := f.roles[id]
	if !ok {
		return "", utils.ErrNotFound
	}
	return r, nil
}

type fakeInstruments struct {
	rows  map[string]models.Instrument
	lists int
}

func newFakeInstruments() *fakeInstruments {
	return &fakeInstruments{rows: map[string]models.Instrument{}}
}

func (f *fakeInstruments) List(context.Context) ([]models.Instrument, error) {
	f.lists++
	out := make([]models.Instrument, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeInstruments) Create(_ context.Context, in *models.Instrument) error {
	in.CreatedAt = time.Now().UTC()
	f.rows[in.ID] = *in
	return nil
}

func (f *fakeInstruments) Rename(_ context.Context, id, name string) (*models.Instrument, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	r.Name = name
	f.rows[id] = r
	return &r, nil
}

func (f *fakeInstruments) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return utils.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeOrchestras struct {
	rows map[string]models.Orchestra
}

func newFakeOrchestras() *fakeOrchestras {
	return &fakeOrchestras{rows: map[string]models.Orchestra{}}
}

func (f *fakeOrchestras) List(context.Context) ([]models.Orchestra, error) {
	out := make([]models.Orchestra, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeOrchestras) Create(_ context.Context, o *models.Orchestra) error {
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrchestras) Update(_ context.Context, id, name string, description *string) (*models.Orchestra, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	r.Name = name
	if description != nil {
		r.Description = description
	}
	f.rows[id] = r
	return &r, nil
}

func (f *fakeOrchestras) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return utils.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeAssoc struct {
	instruments map[string][]string
	orchestras  map[string][]string
	replaceErr  error
}

func newFakeAssoc() *fakeAssoc {
	return &fakeAssoc{instruments: map[string][]string{}, orchestras: map[string][]string{}}
}

func (f *fakeAssoc) ReplaceInstruments(_ context.Context, userID string, ids []string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.instruments[userID] = append([]string(nil), ids...)
	return nil
}

func (f *fakeAssoc) ReplaceOrchestras(_ context.Context, userID string, ids []string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.orchestras[userID] = append([]string(nil), ids...)
	return nil
}

func (f *fakeAssoc) ListInstruments(_ context.Context, userID string) ([]models.InstrumentRef, error) {
	out := []models.InstrumentRef{}
	for _, id := range f.instruments[userID] {
		out = append(out, models.InstrumentRef{ID: id, Name: "instrument " + id})
	}
	return out, nil
}

func (f *fakeAssoc) ListOrchestras(_ context.Context, userID string) ([]models.OrchestraRef, error) {
	out := []models.OrchestraRef{}
	for _, id := range f.orchestras[userID] {
		out = append(out, models.OrchestraRef{ID: id, Name: "orchestra " + id})
	}
	return out, nil
}

type auditEvent struct {
	actor, action, resource, resourceID string
}

type fakeAudit struct {
	events []auditEvent
}

func (f *fakeAudit) Record(_ context.Context, actorID, action, resource, resourceID string, _ map[string]any) {
	f.events = append(f.events, auditEvent{actorID, action, resource, resourceID})
}

func (f *fakeAudit) actions() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.action)
	}
	return out
}

type mapCache struct {
	data map[string][]byte
	err  error
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}}
}

func (c *mapCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *mapCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	if c.err != nil {
		return c.err
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) Del(_ context.Context, keys ...string) error {
	if c.err != nil {
		return c.err
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
