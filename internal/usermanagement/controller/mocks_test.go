package controller

import (
	"context"
	"sync"

	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/google/uuid"
)

// MockRepository implements every repository interface of the package.
type MockRepository struct {
	createIndustry       func(context.Context, *models.Industry) error
	industryExists       func(context.Context, uuid.UUID) (bool, error)
	industryExistsByName func(context.Context, string) (bool, error)
	listIndustries       func(context.Context, models.PageRequest) ([]models.Industry, int64, error)
	createCompany        func(context.Context, *models.Company) error
	getCompany           func(context.Context, uuid.UUID) (*models.Company, error)
	companyExists        func(context.Context, uuid.UUID) (bool, error)
	companyExistsByName  func(context.Context, string) (bool, error)
	listCompanies        func(context.Context, models.PageRequest) ([]models.Company, int64, error)
	createUser           func(context.Context, *models.User) error
	userNameExists       func(context.Context, string) (bool, error)
	emailExists          func(context.Context, string) (bool, error)
}

func (m *MockRepository) CreateIndustry(ctx context.Context, i *models.Industry) error {
	return m.createIndustry(ctx, i)
}

func (m *MockRepository) IndustryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.industryExists(ctx, id)
}

func (m *MockRepository) IndustryExistsByName(ctx context.Context, name string) (bool, error) {
	return m.industryExistsByName(ctx, name)
}

func (m *MockRepository) ListIndustries(ctx context.Context, req models.PageRequest) ([]models.Industry, int64, error) {
	return m.listIndustries(ctx, req)
}

func (m *MockRepository) CreateCompany(ctx context.Context, c *models.Company) error {
	return m.createCompany(ctx, c)
}

func (m *MockRepository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return m.getCompany(ctx, id)
}

func (m *MockRepository) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.companyExists(ctx, id)
}

func (m *MockRepository) CompanyExistsByName(ctx context.Context, name string) (bool, error) {
	return m.companyExistsByName(ctx, name)
}

func (m *MockRepository) ListCompanies(ctx context.Context, req models.PageRequest) ([]models.Company, int64, error) {
	return m.listCompanies(ctx, req)
}

func (m *MockRepository) CreateUser(ctx context.Context, u *models.User) error {
	return m.createUser(ctx, u)
}

func (m *MockRepository) UserNameExists(ctx context.Context, userName string) (bool, error) {
	return m.userNameExists(ctx, userName)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExists(ctx, email)
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []events.Event
	wg             *sync.WaitGroup
}

// Produce records the event and signals the wait group.
func (m *MockProducer) Produce(event events.Event) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, event)
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func (m *MockProducer) produced() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.producedEvents...)
}

type MockHasher struct {
	hash func(string) (string, error)
}

func (m *MockHasher) Hash(password string) (string, error) {
	return m.hash(password)
}
