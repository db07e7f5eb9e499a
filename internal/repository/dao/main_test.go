package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tycoonworld/estate-api/internal/config"
)

const (
	testAdminEmail    = "admin@test.local"
	testAdminPassword = "AdminPass1"
	testBankEmail     = "bank@test.local"
	testMaxSupply     = "1000000000000000000000000000"
	testBankReserve   = "1000000000000000000000000"
)

var testDB *gorm.DB

func testSeedConfig() (*config.SeedConfig, *config.LedgerConfig) {
	return &config.SeedConfig{
			AdminEmail:    testAdminEmail,
			AdminPassword: testAdminPassword,
			BankEmail:     testBankEmail,
		}, &config.LedgerConfig{
			MaxSupply:   testMaxSupply,
			BankReserve: testBankReserve,
		}
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %s", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=estate",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=estate_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %s", err)
	}
	_ = resource.Expire(300)

	dsn := fmt.Sprintf("postgres://estate:secret@%s/estate_test?sslmode=disable",
		resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 120 * time.Second
	if err = pool.Retry(func() error {
		db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db
		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres: %s", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %s", err)
	}
	seed, ledger := testSeedConfig()
	if err = SeedGenesis(testDB, seed, ledger); err != nil {
		log.Fatalf("could not seed genesis state: %s", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %s", err)
	}

	os.Exit(code)
}

var testUserSeq int64

// newTestUser inserts a fresh player so tests never share accounts.
func newTestUser(t *testing.T) User {
	t.Helper()

	n := atomic.AddInt64(&testUserSeq, 1)
	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:    fmt.Sprintf("player%d@test.local", n),
		Password: "!disabled",
		Name:     fmt.Sprintf("Player %d", n),
		Role:     "player",
	})
	if err != nil {
		t.Fatalf("insert test user: %s", err)
	}

	return user
}

func bankUser(t *testing.T) User {
	t.Helper()

	bank, err := NewUserDAO(testDB).FindByEmail(context.Background(), testBankEmail)
	if err != nil {
		t.Fatalf("find bank user: %s", err)
	}

	return bank
}
