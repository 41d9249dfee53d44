package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// In-memory repository fakes mirroring the Postgres implementations'
// error contracts: pgx.ErrNoRows on missing rows and
// repository.ErrVersionConflict on stale ticket versions.

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	ticket.Version = 1
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Version != ticket.Version {
		return repository.ErrVersionConflict
	}
	ticket.Version++
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := ticket
	return &copy, nil
}

func (r *fakeTicketRepo) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ticket := range r.tickets {
		if ticket.TicketNumber == number {
			copy := ticket
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Ticket
	for _, ticket := range r.tickets {
		if !ticketMatches(ticket, filter) {
			continue
		}
		out = append(out, ticket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func ticketMatches(ticket domain.Ticket, filter repository.TicketFilter) bool {
	if filter.CreatedByUserID != nil {
		if ticket.CreatedBy.UserID == nil || *ticket.CreatedBy.UserID != *filter.CreatedByUserID {
			return false
		}
	}
	if filter.DepartmentID != nil && ticket.DepartmentID != *filter.DepartmentID {
		return false
	}
	if filter.AssigneeID != nil {
		if ticket.AssigneeID == nil || *ticket.AssigneeID != *filter.AssigneeID {
			return false
		}
	}
	if filter.CompanyName != nil && ticket.CreatedBy.CompanyName != *filter.CompanyName {
		return false
	}
	if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
		return false
	}
	if len(filter.Priorities) > 0 && !containsPriority(filter.Priorities, ticket.Priority) {
		return false
	}
	if filter.Category != nil && ticket.Category != *filter.Category {
		return false
	}
	if filter.ResolvedOnly && (ticket.Status != domain.TicketStatusResolved || ticket.Solution == "") {
		return false
	}
	if filter.SearchTerm != nil {
		term := strings.ToLower(*filter.SearchTerm)
		haystack := strings.ToLower(ticket.Title + " " + ticket.Description + " " + ticket.TicketNumber + " " + ticket.Solution)
		if !strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

func containsStatus(list []domain.TicketStatus, s domain.TicketStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsPriority(list []domain.TicketPriority, p domain.TicketPriority) bool {
	for _, candidate := range list {
		if candidate == p {
			return true
		}
	}
	return false
}

func (r *fakeTicketRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) CountByCreator(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, ticket := range r.tickets {
		if ticket.CreatedBy.UserID != nil && *ticket.CreatedBy.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) CountByDepartment(ctx context.Context, departmentID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, ticket := range r.tickets {
		if ticket.DepartmentID == departmentID {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := user
	return &copy, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copy := user
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if filter.CompanyName != nil && user.CompanyName != *filter.CompanyName {
			continue
		}
		if len(filter.Roles) > 0 && !containsRole(filter.Roles, user.Role) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsUserStatus(filter.Statuses, user.Status) {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(user.Name+" "+user.Email), term) {
				continue
			}
		}
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func containsRole(list []domain.Role, r domain.Role) bool {
	for _, candidate := range list {
		if candidate == r {
			return true
		}
	}
	return false
}

func containsUserStatus(list []domain.UserStatus, s domain.UserStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListCompanyNames(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var names []string
	for _, user := range r.users {
		if user.CompanyName == "" || seen[user.CompanyName] {
			continue
		}
		seen[user.CompanyName] = true
		names = append(names, user.CompanyName)
	}
	sort.Strings(names)
	return names, nil
}

type fakeDepartmentRepo struct {
	mu          sync.Mutex
	departments map[string]domain.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[string]domain.Department{}}
}

func (r *fakeDepartmentRepo) Create(ctx context.Context, dept *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept.ID = uuid.NewString()
	dept.CreatedAt = time.Now()
	dept.UpdatedAt = dept.CreatedAt
	r.departments[dept.ID] = *dept
	return nil
}

func (r *fakeDepartmentRepo) Update(ctx context.Context, dept *domain.Department) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.departments[dept.ID]; !ok {
		return pgx.ErrNoRows
	}
	dept.UpdatedAt = time.Now()
	r.departments[dept.ID] = *dept
	return nil
}

func (r *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dept, ok := r.departments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := dept
	return &copy, nil
}

func (r *fakeDepartmentRepo) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, dept := range r.departments {
		if dept.Name == name {
			copy := dept
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeDepartmentRepo) List(ctx context.Context) ([]domain.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Department
	for _, dept := range r.departments {
		out = append(out, dept)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeDepartmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.departments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.departments, id)
	return nil
}

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[string]domain.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[string]domain.Company{}}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	company.ID = uuid.NewString()
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, company *domain.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[company.ID]; !ok {
		return pgx.ErrNoRows
	}
	company.UpdatedAt = time.Now()
	r.companies[company.ID] = *company
	return nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	company, ok := r.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := company
	return &copy, nil
}

func (r *fakeCompanyRepo) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, company := range r.companies {
		if company.Name == name {
			copy := company
			return &copy, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Company
	for _, company := range r.companies {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeRemarkRepo struct {
	mu      sync.Mutex
	remarks []domain.Remark
}

func (r *fakeRemarkRepo) Create(ctx context.Context, remark *domain.Remark) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	remark.ID = uuid.NewString()
	remark.CreatedAt = time.Now()
	r.remarks = append(r.remarks, *remark)
	return nil
}

func (r *fakeRemarkRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Remark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Remark
	for _, remark := range r.remarks {
		if remark.TicketID == ticketID {
			out = append(out, remark)
		}
	}
	return out, nil
}

type fakeAttachmentRepo struct {
	mu          sync.Mutex
	attachments map[string]domain.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: map[string]domain.Attachment{}}
}

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *domain.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment.ID = uuid.NewString()
	attachment.CreatedAt = time.Now()
	r.attachments[attachment.ID] = *attachment
	return nil
}

func (r *fakeAttachmentRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment, ok := r.attachments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copy := attachment
	return &copy, nil
}

func (r *fakeAttachmentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Attachment
	for _, attachment := range r.attachments {
		if attachment.TicketID == ticketID {
			out = append(out, attachment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeAttachmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.attachments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.attachments, id)
	return nil
}

type fakeResetStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeResetStore() *fakeResetStore {
	return &fakeResetStore{tokens: map[string]string{}}
}

func (s *fakeResetStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = userID
	return nil
}

func (s *fakeResetStore) Consume(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.tokens[token]
	if !ok {
		return "", repository.ErrResetTokenNotFound
	}
	delete(s.tokens, token)
	return userID, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
