package test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/usermanagement/internal/usermanagement/controller"
	"github.com/gartstein/usermanagement/internal/usermanagement/db"
	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/events"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"github.com/gartstein/usermanagement/internal/usermanagement/security"
	"github.com/gartstein/usermanagement/internal/usermanagement/seed"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const (
	kafkaBroker = "localhost:9092"
	topic       = "usermanagement.events.test"
)

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	producer    *events.Producer
	kafkaReader *kafka.Reader
	logger      *zap.Logger
	testTimeout time.Duration
}

func TestIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 20 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repo, err := db.NewRepositoryWithRetry(ctx, &db.Config{
		Host:     "localhost",
		Port:     5432,
		User:     "test",
		Password: "test",
		DBName:   "test",
		SSLMode:  "disable",
	}, 30*time.Second, s.logger)
	require.NoError(s.T(), err, "database initialization failed")
	s.dbRepo = repo

	s.producer, s.kafkaReader, err = initializeKafkaWithRetry()
	require.NoError(s.T(), err, "kafka initialization failed")
}

func initializeKafkaWithRetry() (*events.Producer, *kafka.Reader, error) {
	var producer *events.Producer
	err := backoff.Retry(func() error {
		var err error
		producer, err = events.NewProducer([]string{kafkaBroker}, zap.NewNop(), topic)
		return err
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 10))
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer initialization failed: %w", err)
	}

	err = backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", kafkaBroker)
		if err != nil {
			return err
		}
		defer conn.Close()

		partitions, err := conn.ReadPartitions(topic)
		if err != nil || len(partitions) == 0 {
			return fmt.Errorf("topic %s not found", topic)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		producer.Close()
		return nil, nil, fmt.Errorf("kafka topic check failed: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{kafkaBroker},
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return producer, reader, nil
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.kafkaReader != nil {
		_ = s.kafkaReader.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	err := s.dbRepo.Exec(ctx, "TRUNCATE TABLE users, companies, industries CASCADE")
	require.NoError(s.T(), err, "failed to clean database")
}

func (s *IntegrationTestSuite) TestRegistrationFlow() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()
	ctx = models.WithActor(ctx, "integration")

	industries := controller.NewIndustryService(s.dbRepo, s.producer, s.logger)
	companies := controller.NewCompanyService(s.dbRepo, s.producer, s.logger)
	users := controller.NewUserService(s.dbRepo, security.NewBcryptHasher(4), s.producer, s.logger)

	industry, err := industries.CreateIndustry(ctx, models.CreateIndustryCommand{
		Name:        "Energy",
		Description: "Oil, gas and renewables",
	})
	require.NoError(s.T(), err)
	s.verifyKafkaEvent(ctx, events.IndustryCreated, industry.ID)

	company, err := companies.CreateCompany(ctx, models.CreateCompanyCommand{
		Name:       "Integration Energy",
		IndustryID: industry.ID,
	})
	require.NoError(s.T(), err)
	s.verifyKafkaEvent(ctx, events.CompanyCreated, company.ID)

	email := "jane@example.com"
	userID, err := users.RegisterUser(ctx, models.RegisterUserCommand{
		CompanyID:            company.ID,
		FirstName:            "Jane",
		LastName:             "Doe",
		UserName:             "jane.doe",
		Password:             "secret123",
		PasswordRepetition:   "secret123",
		Email:                &email,
		AcceptTermsOfService: true,
		AcceptPrivacyPolicy:  true,
	})
	require.NoError(s.T(), err)
	event := s.verifyKafkaEvent(ctx, events.UserRegistered, userID)
	assert.NotContains(s.T(), string(event), "secret123")
	assert.NotContains(s.T(), string(event), "passwordHash")

	available, err := users.CheckUsernameAvailability(ctx, "jane.doe")
	require.NoError(s.T(), err)
	assert.False(s.T(), available)

	got, err := companies.GetCompany(ctx, company.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), got.Users, 1)
	assert.Equal(s.T(), "jane.doe", got.Users[0].UserName)
	assert.Equal(s.T(), "integration", got.Users[0].CreatedBy)
}

func (s *IntegrationTestSuite) TestDuplicateUsernameUnderPostgres() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	_, err := seed.NewSeeder(s.dbRepo, s.logger).Run(ctx)
	require.NoError(s.T(), err)

	companyID := seed.Companies()[0].ID
	user := func() *models.User {
		return &models.User{
			ID:           uuid.New(),
			FirstName:    "John",
			LastName:     "Doe",
			UserName:     "john",
			PasswordHash: "hash",
			CompanyID:    companyID,
		}
	}
	require.NoError(s.T(), s.dbRepo.CreateUser(ctx, user()))

	err = s.dbRepo.CreateUser(ctx, user())
	assert.ErrorIs(s.T(), err, e.ErrUsernameAlreadyExists)

	missing := user()
	missing.UserName = "other"
	missing.CompanyID = uuid.New()
	err = s.dbRepo.CreateUser(ctx, missing)
	assert.ErrorIs(s.T(), err, e.ErrCompanyNotFound)
}

// verifyKafkaEvent waits for the event of eventType keyed by id and returns its raw value.
func (s *IntegrationTestSuite) verifyKafkaEvent(ctx context.Context, eventType events.EventType, id uuid.UUID) []byte {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for {
		msg, err := s.kafkaReader.ReadMessage(ctx)
		if err != nil {
			s.T().Fatalf("No %s event received for %s: %v", eventType, id, err)
			return nil
		}
		if string(msg.Key) != id.String() {
			s.T().Logf("Skipping message with unmatched key: %s", string(msg.Key))
			continue
		}

		var event events.Event
		require.NoError(s.T(), json.Unmarshal(msg.Value, &event))
		if event.Type != eventType {
			continue
		}
		assert.Equal(s.T(), id, event.ID)
		return msg.Value
	}
}
