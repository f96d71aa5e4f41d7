package acess_log

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// purgeBatch limita quantas linhas cada DELETE remove, para não travar a
// tabela enquanto o servidor grava.
const purgeBatch = 5000

type Repository interface {
	Save(ctx context.Context, entry AccessLog) error
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Save(ctx context.Context, entry AccessLog) error {
	return r.db.WithContext(ctx).Create(&entry).Error
}

// DeleteBefore apaga em lotes pelo índice de request_time até não sobrar
// nada anterior a cutoff.
func (r *gormRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		res := r.db.WithContext(ctx).Exec(
			`DELETE FROM access_log WHERE id IN (
				SELECT id FROM access_log WHERE request_time < ? ORDER BY request_time LIMIT ?)`,
			cutoff, purgeBatch,
		)
		if res.Error != nil {
			return total, res.Error
		}
		total += res.RowsAffected
		if res.RowsAffected < purgeBatch {
			return total, nil
		}
	}
}
