package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(user *domain.User) (*domain.User, error)
	UpdateFn func(user *domain.User) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		ByID: make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user within a workspace
func (m *MockUserRepository) GetByID(workspaceID int32, id uuid.UUID) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok || user.WorkspaceID != workspaceID || user.DeletedAt != nil {
		return nil, domain.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	for _, user := range m.ByID {
		if user.Auth0ID != nil && *user.Auth0ID == auth0ID && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetPendingByEmail finds an invitation that has not been claimed
func (m *MockUserRepository) GetPendingByEmail(email string) (*domain.User, error) {
	for _, user := range m.ByID {
		if user.IsPending() && strings.EqualFold(user.Email, email) && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ListByWorkspace returns the users of a workspace ordered by name
func (m *MockUserRepository) ListByWorkspace(workspaceID int32) ([]*domain.User, error) {
	users := []*domain.User{}
	for _, user := range m.ByID {
		if user.WorkspaceID == workspaceID && user.DeletedAt == nil {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

// ExistsByEmail checks emails across all workspaces
func (m *MockUserRepository) ExistsByEmail(email string, excludeID uuid.UUID) (bool, error) {
	for _, user := range m.ByID {
		if user.ID != excludeID && strings.EqualFold(user.Email, email) && user.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByUsername checks usernames within a workspace
func (m *MockUserRepository) ExistsByUsername(workspaceID int32, username string, excludeID uuid.UUID) (bool, error) {
	for _, user := range m.ByID {
		if user.WorkspaceID == workspaceID && user.ID != excludeID && strings.EqualFold(user.Username, username) && user.DeletedAt == nil {
			return true, nil
		}
	}
	return false, nil
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(user)
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.ByID[user.ID] = user
	return user, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(user)
	}
	if _, ok := m.ByID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	m.ByID[user.ID] = user
	return user, nil
}

// LinkAuth0ID claims a pending invitation
func (m *MockUserRepository) LinkAuth0ID(id uuid.UUID, auth0ID string, pictureURL *string) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok || !user.IsPending() {
		return nil, domain.ErrUserNotFound
	}
	user.Auth0ID = &auth0ID
	user.PictureURL = pictureURL
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.ByID[user.ID] = user
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	NextID     int32
	CreateFn   func(workspace *domain.Workspace) (*domain.Workspace, error)
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		NextID:     1,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	if m.CreateFn != nil {
		return m.CreateFn(workspace)
	}
	workspace.ID = m.NextID
	m.NextID++
	m.Workspaces[workspace.ID] = workspace
	return workspace, nil
}

// Update updates a workspace
func (m *MockWorkspaceRepository) Update(workspace *domain.Workspace) (*domain.Workspace, error) {
	if _, ok := m.Workspaces[workspace.ID]; !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	m.Workspaces[workspace.ID] = workspace
	return workspace, nil
}

// AddWorkspace adds a workspace to the mock repository (helper for tests)
func (m *MockWorkspaceRepository) AddWorkspace(workspace *domain.Workspace) {
	m.Workspaces[workspace.ID] = workspace
	if workspace.ID >= m.NextID {
		m.NextID = workspace.ID + 1
	}
}

// MockProviderRepository is a mock implementation of domain.ProviderRepository
type MockProviderRepository struct {
	Providers map[int32]*domain.Provider
	NextID    int32
	ListFn    func(workspaceID int32, params domain.ListParams) ([]*domain.Provider, int64, error)
}

// NewMockProviderRepository creates a new MockProviderRepository
func NewMockProviderRepository() *MockProviderRepository {
	return &MockProviderRepository{
		Providers: make(map[int32]*domain.Provider),
		NextID:    1,
	}
}

func (m *MockProviderRepository) Create(provider *domain.Provider) (*domain.Provider, error) {
	provider.ID = m.NextID
	m.NextID++
	stamp(&provider.CreatedAt, &provider.UpdatedAt)
	m.Providers[provider.ID] = provider
	return provider, nil
}

func (m *MockProviderRepository) GetByID(workspaceID int32, id int32) (*domain.Provider, error) {
	p, ok := m.Providers[id]
	if !ok || p.WorkspaceID != workspaceID || p.DeletedAt != nil {
		return nil, domain.ErrProviderNotFound
	}
	c := *p
	return &c, nil
}

// GetByIDs includes soft-deleted providers so old policies still show their names
func (m *MockProviderRepository) GetByIDs(workspaceID int32, ids []int32) (map[int32]*domain.Provider, error) {
	out := make(map[int32]*domain.Provider)
	for _, id := range ids {
		if p, ok := m.Providers[id]; ok && p.WorkspaceID == workspaceID {
			out[id] = p
		}
	}
	return out, nil
}

func (m *MockProviderRepository) List(workspaceID int32, params domain.ListParams) ([]*domain.Provider, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(workspaceID, params)
	}
	var matched []*domain.Provider
	for _, p := range m.Providers {
		if p.WorkspaceID != workspaceID || p.DeletedAt != nil {
			continue
		}
		if params.IsActive != nil && p.IsActive != *params.IsActive {
			continue
		}
		if !containsFold(params.Search, p.Name) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, params), int64(len(matched)), nil
}

func (m *MockProviderRepository) ExistsByName(workspaceID int32, name string, excludeID int32) (bool, error) {
	for _, p := range m.Providers {
		if p.WorkspaceID == workspaceID && p.ID != excludeID && p.DeletedAt == nil && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockProviderRepository) Update(provider *domain.Provider) (*domain.Provider, error) {
	if _, err := m.GetByID(provider.WorkspaceID, provider.ID); err != nil {
		return nil, err
	}
	provider.UpdatedAt = time.Now()
	m.Providers[provider.ID] = provider
	return provider, nil
}

func (m *MockProviderRepository) SoftDelete(workspaceID int32, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	now := time.Now()
	m.Providers[id].DeletedAt = &now
	return nil
}

// AddProvider adds a provider to the mock repository (helper for tests)
func (m *MockProviderRepository) AddProvider(provider *domain.Provider) {
	m.Providers[provider.ID] = provider
	if provider.ID >= m.NextID {
		m.NextID = provider.ID + 1
	}
}

// MockVehicleClassRepository is a mock implementation of domain.VehicleClassRepository
type MockVehicleClassRepository struct {
	VehicleClasses map[int32]*domain.VehicleClass
	NextID         int32
}

// NewMockVehicleClassRepository creates a new MockVehicleClassRepository
func NewMockVehicleClassRepository() *MockVehicleClassRepository {
	return &MockVehicleClassRepository{
		VehicleClasses: make(map[int32]*domain.VehicleClass),
		NextID:         1,
	}
}

func (m *MockVehicleClassRepository) Create(vc *domain.VehicleClass) (*domain.VehicleClass, error) {
	vc.ID = m.NextID
	m.NextID++
	stamp(&vc.CreatedAt, &vc.UpdatedAt)
	m.VehicleClasses[vc.ID] = vc
	return vc, nil
}

func (m *MockVehicleClassRepository) GetByID(workspaceID int32, id int32) (*domain.VehicleClass, error) {
	vc, ok := m.VehicleClasses[id]
	if !ok || vc.WorkspaceID != workspaceID || vc.DeletedAt != nil {
		return nil, domain.ErrVehicleClassNotFound
	}
	c := *vc
	return &c, nil
}

func (m *MockVehicleClassRepository) GetByIDs(workspaceID int32, ids []int32) (map[int32]*domain.VehicleClass, error) {
	out := make(map[int32]*domain.VehicleClass)
	for _, id := range ids {
		if vc, ok := m.VehicleClasses[id]; ok && vc.WorkspaceID == workspaceID {
			out[id] = vc
		}
	}
	return out, nil
}

func (m *MockVehicleClassRepository) List(workspaceID int32, params domain.ListParams) ([]*domain.VehicleClass, int64, error) {
	var matched []*domain.VehicleClass
	for _, vc := range m.VehicleClasses {
		if vc.WorkspaceID != workspaceID || vc.DeletedAt != nil {
			continue
		}
		if params.IsActive != nil && vc.IsActive != *params.IsActive {
			continue
		}
		if !containsFold(params.Search, vc.Name) {
			continue
		}
		matched = append(matched, vc)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, params), int64(len(matched)), nil
}

func (m *MockVehicleClassRepository) ExistsByName(workspaceID int32, name string, excludeID int32) (bool, error) {
	for _, vc := range m.VehicleClasses {
		if vc.WorkspaceID == workspaceID && vc.ID != excludeID && vc.DeletedAt == nil && strings.EqualFold(vc.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockVehicleClassRepository) Update(vc *domain.VehicleClass) (*domain.VehicleClass, error) {
	if _, err := m.GetByID(vc.WorkspaceID, vc.ID); err != nil {
		return nil, err
	}
	vc.UpdatedAt = time.Now()
	m.VehicleClasses[vc.ID] = vc
	return vc, nil
}

func (m *MockVehicleClassRepository) SoftDelete(workspaceID int32, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	now := time.Now()
	m.VehicleClasses[id].DeletedAt = &now
	return nil
}

// AddVehicleClass adds a vehicle class to the mock repository (helper for tests)
func (m *MockVehicleClassRepository) AddVehicleClass(vc *domain.VehicleClass) {
	m.VehicleClasses[vc.ID] = vc
	if vc.ID >= m.NextID {
		m.NextID = vc.ID + 1
	}
}

// MockAgentRepository is a mock implementation of domain.AgentRepository
type MockAgentRepository struct {
	Agents map[int32]*domain.Agent
	NextID int32
}

// NewMockAgentRepository creates a new MockAgentRepository
func NewMockAgentRepository() *MockAgentRepository {
	return &MockAgentRepository{
		Agents: make(map[int32]*domain.Agent),
		NextID: 1,
	}
}

func (m *MockAgentRepository) Create(agent *domain.Agent) (*domain.Agent, error) {
	agent.ID = m.NextID
	m.NextID++
	stamp(&agent.CreatedAt, &agent.UpdatedAt)
	m.Agents[agent.ID] = agent
	return agent, nil
}

func (m *MockAgentRepository) GetByID(workspaceID int32, id int32) (*domain.Agent, error) {
	a, ok := m.Agents[id]
	if !ok || a.WorkspaceID != workspaceID || a.DeletedAt != nil {
		return nil, domain.ErrAgentNotFound
	}
	c := *a
	return &c, nil
}

func (m *MockAgentRepository) GetByIDs(workspaceID int32, ids []int32) (map[int32]*domain.Agent, error) {
	out := make(map[int32]*domain.Agent)
	for _, id := range ids {
		if a, ok := m.Agents[id]; ok && a.WorkspaceID == workspaceID {
			out[id] = a
		}
	}
	return out, nil
}

func (m *MockAgentRepository) List(workspaceID int32, params domain.ListParams) ([]*domain.Agent, int64, error) {
	var matched []*domain.Agent
	for _, a := range m.Agents {
		if a.WorkspaceID != workspaceID || a.DeletedAt != nil {
			continue
		}
		if params.IsActive != nil && a.IsActive != *params.IsActive {
			continue
		}
		if !containsFold(params.Search, a.Name, a.PhoneNumber, a.Email, a.Location.City, a.Location.State) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return paginate(matched, params), int64(len(matched)), nil
}

func (m *MockAgentRepository) ExistsByPhone(workspaceID int32, phone string, excludeID int32) (bool, error) {
	for _, a := range m.Agents {
		if a.WorkspaceID == workspaceID && a.ID != excludeID && a.DeletedAt == nil && a.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAgentRepository) CountActive(workspaceID int32) (int64, error) {
	var n int64
	for _, a := range m.Agents {
		if a.WorkspaceID == workspaceID && a.DeletedAt == nil && a.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *MockAgentRepository) Update(agent *domain.Agent) (*domain.Agent, error) {
	if _, err := m.GetByID(agent.WorkspaceID, agent.ID); err != nil {
		return nil, err
	}
	agent.UpdatedAt = time.Now()
	m.Agents[agent.ID] = agent
	return agent, nil
}

func (m *MockAgentRepository) SoftDelete(workspaceID int32, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	now := time.Now()
	m.Agents[id].DeletedAt = &now
	return nil
}

// AddAgent adds an agent to the mock repository (helper for tests)
func (m *MockAgentRepository) AddAgent(agent *domain.Agent) {
	m.Agents[agent.ID] = agent
	if agent.ID >= m.NextID {
		m.NextID = agent.ID + 1
	}
}

// MockPolicyRepository is a mock implementation of domain.PolicyRepository
type MockPolicyRepository struct {
	Policies          map[int32]*domain.Policy
	NextID            int32
	StatusUpdates     []domain.PolicyStatusUpdate
	ListAllFn         func(workspaceID int32, filter domain.PolicyFilter) ([]*domain.Policy, error)
	UpdateStatusesErr error
}

// NewMockPolicyRepository creates a new MockPolicyRepository
func NewMockPolicyRepository() *MockPolicyRepository {
	return &MockPolicyRepository{
		Policies: make(map[int32]*domain.Policy),
		NextID:   1,
	}
}

// Create stores a copy so later mutations by the caller do not leak into the store
func (m *MockPolicyRepository) Create(policy *domain.Policy) (*domain.Policy, error) {
	policy.ID = m.NextID
	m.NextID++
	stamp(&policy.CreatedAt, &policy.UpdatedAt)
	stored := *policy
	m.Policies[policy.ID] = &stored
	return clonePolicy(&stored), nil
}

func (m *MockPolicyRepository) GetByID(workspaceID int32, id int32) (*domain.Policy, error) {
	p, ok := m.Policies[id]
	if !ok || p.WorkspaceID != workspaceID || p.DeletedAt != nil {
		return nil, domain.ErrPolicyNotFound
	}
	return clonePolicy(p), nil
}

func (m *MockPolicyRepository) List(workspaceID int32, filter domain.PolicyFilter) ([]*domain.Policy, int64, error) {
	matched, err := m.ListAll(workspaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	return paginate(matched, filter.ListParams), int64(len(matched)), nil
}

func (m *MockPolicyRepository) ListAll(workspaceID int32, filter domain.PolicyFilter) ([]*domain.Policy, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(workspaceID, filter)
	}
	matched := []*domain.Policy{}
	for _, p := range m.Policies {
		if p.WorkspaceID != workspaceID || p.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.AgentID != nil && p.Agent.ID() != *filter.AgentID {
			continue
		}
		if filter.ProviderID != nil && p.InsuranceProvider.ID() != *filter.ProviderID {
			continue
		}
		if filter.VehicleClassID != nil && p.VehicleType.ID() != *filter.VehicleClassID {
			continue
		}
		if filter.StartDateFrom != nil && p.StartDate.Before(*filter.StartDateFrom) {
			continue
		}
		if filter.StartDateTo != nil && p.StartDate.After(*filter.StartDateTo) {
			continue
		}
		if !containsFold(filter.Search, p.Name, p.PolicyNumber, p.PhoneNumber) {
			continue
		}
		matched = append(matched, clonePolicy(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return matched, nil
}

func (m *MockPolicyRepository) ListEndingBetween(workspaceID int32, from, to time.Time) ([]*domain.Policy, error) {
	matched := []*domain.Policy{}
	for _, p := range m.Policies {
		if p.WorkspaceID != workspaceID || p.DeletedAt != nil {
			continue
		}
		if p.EndDate.Before(from) || p.EndDate.After(to) {
			continue
		}
		matched = append(matched, clonePolicy(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].EndDate.Before(matched[j].EndDate) })
	return matched, nil
}

func (m *MockPolicyRepository) ExistsByPolicyNumber(workspaceID int32, policyNumber string, excludeID int32) (bool, error) {
	for _, p := range m.Policies {
		if p.WorkspaceID == workspaceID && p.ID != excludeID && p.DeletedAt == nil && p.PolicyNumber == policyNumber {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPolicyRepository) Update(policy *domain.Policy) (*domain.Policy, error) {
	if _, err := m.GetByID(policy.WorkspaceID, policy.ID); err != nil {
		return nil, err
	}
	policy.UpdatedAt = time.Now()
	stored := *policy
	m.Policies[policy.ID] = &stored
	return clonePolicy(&stored), nil
}

func (m *MockPolicyRepository) SoftDelete(workspaceID int32, id int32) error {
	p, ok := m.Policies[id]
	if !ok || p.WorkspaceID != workspaceID || p.DeletedAt != nil {
		return domain.ErrPolicyNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

func (m *MockPolicyRepository) ListForStatusRefresh(afterID int32, limit int32) ([]*domain.Policy, error) {
	var matched []*domain.Policy
	for _, p := range m.Policies {
		if p.ID > afterID && p.DeletedAt == nil {
			matched = append(matched, clonePolicy(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if int32(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (m *MockPolicyRepository) UpdateStatuses(updates []domain.PolicyStatusUpdate) error {
	if m.UpdateStatusesErr != nil {
		return m.UpdateStatusesErr
	}
	for _, u := range updates {
		if p, ok := m.Policies[u.ID]; ok && p.WorkspaceID == u.WorkspaceID {
			p.Status = u.Status
		}
	}
	m.StatusUpdates = append(m.StatusUpdates, updates...)
	return nil
}

// AddPolicy adds a policy to the mock repository (helper for tests)
func (m *MockPolicyRepository) AddPolicy(policy *domain.Policy) {
	stored := *policy
	m.Policies[policy.ID] = &stored
	if policy.ID >= m.NextID {
		m.NextID = policy.ID + 1
	}
}

func clonePolicy(p *domain.Policy) *domain.Policy {
	c := *p
	if p.VehicleInfo != nil {
		vi := *p.VehicleInfo
		c.VehicleInfo = &vi
	}
	return &c
}

// MockAPITokenRepository is a mock implementation of domain.APITokenRepository
type MockAPITokenRepository struct {
	Tokens    map[string]*domain.APIToken
	CreateErr error
	mu        sync.Mutex
	LastUsed  map[uuid.UUID]bool
}

// NewMockAPITokenRepository creates a new MockAPITokenRepository
func NewMockAPITokenRepository() *MockAPITokenRepository {
	return &MockAPITokenRepository{
		Tokens:   make(map[string]*domain.APIToken),
		LastUsed: make(map[uuid.UUID]bool),
	}
}

func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	m.Tokens[token.TokenHash] = token
	return nil
}

func (m *MockAPITokenRepository) GetByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.APIToken, error) {
	result := []*domain.APIToken{}
	for _, t := range m.Tokens {
		if t.WorkspaceID == workspaceID && t.RevokedAt == nil {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *MockAPITokenRepository) GetByID(ctx context.Context, workspaceID int32, id uuid.UUID) (*domain.APIToken, error) {
	for _, t := range m.Tokens {
		if t.ID == id && t.WorkspaceID == workspaceID {
			return t, nil
		}
	}
	return nil, domain.ErrAPITokenNotFound
}

func (m *MockAPITokenRepository) GetByHash(ctx context.Context, hash string) (*domain.APIToken, error) {
	if t, ok := m.Tokens[hash]; ok && t.RevokedAt == nil {
		return t, nil
	}
	return nil, domain.ErrAPITokenNotFound
}

func (m *MockAPITokenRepository) Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	for _, t := range m.Tokens {
		if t.ID == id && t.WorkspaceID == workspaceID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
			return nil
		}
	}
	return domain.ErrAPITokenNotFound
}

func (m *MockAPITokenRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastUsed[id] = true
	return nil
}

// WasUsed reports whether UpdateLastUsed was called for the token
func (m *MockAPITokenRepository) WasUsed(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastUsed[id]
}

// MockPolicyDocumentRepository is a mock implementation of domain.PolicyDocumentRepository
type MockPolicyDocumentRepository struct {
	Documents map[uuid.UUID]*domain.PolicyDocument
	CreateErr error
}

// NewMockPolicyDocumentRepository creates a new MockPolicyDocumentRepository
func NewMockPolicyDocumentRepository() *MockPolicyDocumentRepository {
	return &MockPolicyDocumentRepository{
		Documents: make(map[uuid.UUID]*domain.PolicyDocument),
	}
}

func (m *MockPolicyDocumentRepository) Create(ctx context.Context, doc *domain.PolicyDocument) (*domain.PolicyDocument, error) {
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	doc.CreatedAt = time.Now()
	m.Documents[doc.ID] = doc
	return doc, nil
}

func (m *MockPolicyDocumentRepository) GetByID(ctx context.Context, workspaceID int32, policyID int32, id uuid.UUID) (*domain.PolicyDocument, error) {
	doc, ok := m.Documents[id]
	if !ok || doc.WorkspaceID != workspaceID || doc.PolicyID != policyID || doc.DeletedAt != nil {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *MockPolicyDocumentRepository) ListByPolicy(ctx context.Context, workspaceID int32, policyID int32) ([]*domain.PolicyDocument, error) {
	docs := []*domain.PolicyDocument{}
	for _, doc := range m.Documents {
		if doc.WorkspaceID == workspaceID && doc.PolicyID == policyID && doc.DeletedAt == nil {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

func (m *MockPolicyDocumentRepository) SoftDelete(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	doc, ok := m.Documents[id]
	if !ok || doc.WorkspaceID != workspaceID || doc.DeletedAt != nil {
		return domain.ErrDocumentNotFound
	}
	now := time.Now()
	doc.DeletedAt = &now
	return nil
}

// MockDocumentStore is an in-memory object store
type MockDocumentStore struct {
	Objects   map[string][]byte
	UploadErr error
	// FailAfter makes the nth and later uploads fail when positive
	FailAfter int
	uploads   int
}

// NewMockDocumentStore creates a new MockDocumentStore
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{Objects: make(map[string][]byte)}
}

func (m *MockDocumentStore) Upload(ctx context.Context, objectKey string, data io.Reader, contentType string, size int64) (string, error) {
	m.uploads++
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	if m.FailAfter > 0 && m.uploads >= m.FailAfter {
		return "", fmt.Errorf("upload %d refused", m.uploads)
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectKey] = body
	return objectKey, nil
}

func (m *MockDocumentStore) Delete(ctx context.Context, objectKey string) error {
	delete(m.Objects, objectKey)
	return nil
}

func (m *MockDocumentStore) GeneratePresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://documents.test/%s?expires=%d", objectKey, int(expiry.Seconds())), nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is one call to Publish
type PublishedEvent struct {
	WorkspaceID int32
	Event       websocket.Event
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) Publish(workspaceID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
}

// Last returns the most recent event, or false when nothing was published
func (m *MockEventPublisher) Last() (PublishedEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Events) == 0 {
		return PublishedEvent{}, false
	}
	return m.Events[len(m.Events)-1], true
}

// MockDashboardCache is an in-memory domain.DashboardCache
type MockDashboardCache struct {
	Entries       map[string]*domain.DashboardSummary
	Invalidations map[int32]int
	GetErr        error
	SetErr        error
}

func NewMockDashboardCache() *MockDashboardCache {
	return &MockDashboardCache{
		Entries:       make(map[string]*domain.DashboardSummary),
		Invalidations: make(map[int32]int),
	}
}

func (m *MockDashboardCache) key(workspaceID int32, r domain.DateRange) string {
	bound := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%d:%s:%s", workspaceID, bound(r.From), bound(r.To))
}

func (m *MockDashboardCache) Get(ctx context.Context, workspaceID int32, r domain.DateRange) (*domain.DashboardSummary, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	s, ok := m.Entries[m.key(workspaceID, r)]
	return s, ok, nil
}

func (m *MockDashboardCache) Set(ctx context.Context, workspaceID int32, r domain.DateRange, summary *domain.DashboardSummary) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Entries[m.key(workspaceID, r)] = summary
	return nil
}

func (m *MockDashboardCache) Invalidate(ctx context.Context, workspaceID int32) error {
	m.Invalidations[workspaceID]++
	prefix := fmt.Sprintf("%d:", workspaceID)
	for k := range m.Entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.Entries, k)
		}
	}
	return nil
}

func stamp(createdAt, updatedAt *time.Time) {
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
	*updatedAt = *createdAt
}

func containsFold(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, params domain.ListParams) []T {
	if params.PageSize <= 0 {
		return items
	}
	start := int(params.Offset())
	if start >= len(items) {
		return []T{}
	}
	end := start + int(params.PageSize)
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
