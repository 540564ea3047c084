package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"article-service/internal/core/domain"
	"article-service/internal/core/ports/output"
)

// nodeRecord is the gorm mapping of the node table.
type nodeRecord struct {
	NID        int64     `gorm:"column:nid;primaryKey;autoIncrement"`
	UUID       string    `gorm:"column:uuid;size:36;not null;uniqueIndex"`
	Type       string    `gorm:"column:type;size:32;not null;index:node_type_status_created,priority:1"`
	Title      string    `gorm:"column:title;size:255;not null"`
	BodyValue  string    `gorm:"column:body_value;not null;default:''"`
	BodyFormat string    `gorm:"column:body_format;size:32;not null"`
	Status     bool      `gorm:"column:status;not null;index:node_type_status_created,priority:2"`
	UID        int64     `gorm:"column:uid;not null;default:0"`
	Created    time.Time `gorm:"column:created;not null;index:node_type_status_created,priority:3"`
	Changed    time.Time `gorm:"column:changed;not null"`
}

func (nodeRecord) TableName() string { return "node" }

// Open opens (or creates) a SQLite database at path and migrates the node table.
// Use ":memory:" for a throwaway database.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory: databases shared.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&nodeRecord{}); err != nil {
		return fmt.Errorf("migrate node table: %w", err)
	}
	return nil
}

type nodeRepo struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ports.ArticleRepository {
	return &nodeRepo{db: db}
}

func (r *nodeRepo) Load(ctx context.Context, id int64) (*domain.Node, error) {
	var rec nodeRecord
	if err := r.db.WithContext(ctx).First(&rec, "nid = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNodeNotFound
		}
		return nil, fmt.Errorf("load node: %w", err)
	}
	return rec.toDomain()
}

func (r *nodeRepo) Create(ctx context.Context, node *domain.Node) error {
	rec := fromDomain(node)
	rec.NID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("create node: %w", err)
	}
	node.ID = rec.NID
	return nil
}

func (r *nodeRepo) Save(ctx context.Context, node *domain.Node) error {
	result := r.db.WithContext(ctx).
		Model(&nodeRecord{}).
		Where("nid = ? AND type = ?", node.ID, node.Type).
		Updates(map[string]interface{}{
			"title":       node.Title,
			"body_value":  node.Body.Value,
			"body_format": node.Body.Format,
			"status":      node.Status,
			"changed":     node.ChangedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("save node: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNodeNotFound
	}
	return nil
}

func (r *nodeRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("nid = ?", id).Delete(&nodeRecord{})
	if result.Error != nil {
		return fmt.Errorf("delete node: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNodeNotFound
	}
	return nil
}

func (r *nodeRepo) Query(ctx context.Context, q ports.NodeQuery) ([]*domain.Node, int, error) {
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).Model(&nodeRecord{}).Where("type = ?", q.Type)
		if q.PublishedOnly {
			tx = tx.Where("status = ?", true)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count nodes: %w", err)
	}

	tx := filtered().Order("created DESC").Order("nid DESC")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var recs []nodeRecord
	if err := tx.Find(&recs).Error; err != nil {
		return nil, 0, fmt.Errorf("query nodes: %w", err)
	}

	nodes := make([]*domain.Node, 0, len(recs))
	for i := range recs {
		n, err := recs[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		nodes = append(nodes, n)
	}
	return nodes, int(total), nil
}

func fromDomain(n *domain.Node) nodeRecord {
	return nodeRecord{
		NID:        n.ID,
		UUID:       n.UUID.String(),
		Type:       n.Type,
		Title:      n.Title,
		BodyValue:  n.Body.Value,
		BodyFormat: n.Body.Format,
		Status:     n.Status,
		UID:        n.AuthorID,
		Created:    n.CreatedAt,
		Changed:    n.ChangedAt,
	}
}

func (rec *nodeRecord) toDomain() (*domain.Node, error) {
	id, err := uuid.Parse(rec.UUID)
	if err != nil {
		return nil, fmt.Errorf("parse node %d uuid: %w", rec.NID, err)
	}
	return &domain.Node{
		ID:        rec.NID,
		UUID:      id,
		Type:      rec.Type,
		Title:     rec.Title,
		Body:      domain.TextField{Value: rec.BodyValue, Format: rec.BodyFormat},
		Status:    rec.Status,
		AuthorID:  rec.UID,
		CreatedAt: rec.Created.UTC(),
		ChangedAt: rec.Changed.UTC(),
	}, nil
}
