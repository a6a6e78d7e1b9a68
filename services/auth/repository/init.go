package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/dhwani-ris/authgate/internal/pkg/database"
	"github.com/dhwani-ris/authgate/internal/pkg/models"
)

// UserRepo provides identity and credential storage backed by PostgreSQL
type UserRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(cfg *models.Config, db *sqlx.DB) *UserRepo {
	return &UserRepo{
		cfg: cfg,
		db:  db,
	}
}

// ChallengeRepo stores OTP challenges in redis
type ChallengeRepo struct {
	redisClient *database.RedisClient
}

// NewChallengeRepo creates a new OTP challenge repository
func NewChallengeRepo(redisClient *database.RedisClient) *ChallengeRepo {
	return &ChallengeRepo{
		redisClient: redisClient,
	}
}
