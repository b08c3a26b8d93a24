// Package logic implements the business operations behind the HTTP
// handlers.
package logic

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"corebo/console/internal/cache"
	"corebo/console/internal/descriptor"
	"corebo/console/internal/model"
	"corebo/console/internal/types"
	"corebo/console/internal/utils"
)

// ErrDesignNotFound marks a lookup for a missing or unpublished design.
var ErrDesignNotFound = errors.New("form design not found")

// DesignLogic manages the stored form-design registry.
type DesignLogic struct {
	db    *gorm.DB
	cache *cache.DesignCache
}

// NewDesignLogic creates the design logic over the given stores.
func NewDesignLogic(db *gorm.DB, c *cache.DesignCache) *DesignLogic {
	return &DesignLogic{db: db, cache: c}
}

// Save creates or updates a design. The descriptor body must parse; a
// malformed design never reaches the table. Saving bumps the version and
// drops the cache entry.
func (l *DesignLogic) Save(ctx context.Context, req *types.SaveFormDesignRequest, userID uint) (*model.FormDesign, error) {
	parsed, err := descriptor.Parse([]byte(req.Body))
	if err != nil {
		return nil, fmt.Errorf("invalid descriptor: %w", err)
	}
	if req.Key == "" {
		req.Key = parsed.Key
	}
	if req.Key != parsed.Key {
		return nil, fmt.Errorf("design key %q does not match descriptor key %q", req.Key, parsed.Key)
	}
	if req.WorkflowID == "" {
		req.WorkflowID = parsed.WorkflowID
	}

	var design model.FormDesign
	if req.ID == 0 {
		var count int64
		l.db.Model(&model.FormDesign{}).Where("`key` = ?", req.Key).Count(&count)
		if count > 0 {
			return nil, fmt.Errorf("design key %q already exists", req.Key)
		}
		design = model.FormDesign{
			Key:        req.Key,
			Name:       req.Name,
			WorkflowID: req.WorkflowID,
			Version:    1,
			Body:       req.Body,
			Status:     req.Status,
			Remark:     req.Remark,
		}
		design.CreatedBy = userID
		design.UpdatedBy = userID
		if err := l.db.Create(&design).Error; err != nil {
			return nil, err
		}
	} else {
		if err := l.db.First(&design, req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDesignNotFound
			}
			return nil, err
		}
		updates := map[string]any{
			"name":        req.Name,
			"workflow_id": req.WorkflowID,
			"body":        req.Body,
			"status":      req.Status,
			"remark":      req.Remark,
			"version":     design.Version + 1,
			"updated_by":  userID,
		}
		if err := l.db.Model(&design).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	_ = l.cache.Invalidate(ctx, design.Key)
	return &design, nil
}

// Delete soft-deletes a design and drops its cache entry.
func (l *DesignLogic) Delete(ctx context.Context, id uint) error {
	var design model.FormDesign
	if err := l.db.First(&design, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDesignNotFound
		}
		return err
	}
	if err := l.db.Delete(&design).Error; err != nil {
		return err
	}
	return l.cache.Invalidate(ctx, design.Key)
}

// Get returns one design by id.
func (l *DesignLogic) Get(id uint) (*model.FormDesign, error) {
	var design model.FormDesign
	if err := l.db.First(&design, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignNotFound
		}
		return nil, err
	}
	return &design, nil
}

// GetPublishedBody returns the raw descriptor body of a published design,
// reading through the cache.
func (l *DesignLogic) GetPublishedBody(ctx context.Context, key string) (string, error) {
	if body, hit, err := l.cache.Get(ctx, key); err == nil && hit {
		return body, nil
	}

	var design model.FormDesign
	err := l.db.Where("`key` = ? AND status = ?", key, 1).First(&design).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDesignNotFound
		}
		return "", err
	}

	_ = l.cache.Set(ctx, key, design.Body)
	return design.Body, nil
}

// List returns a filtered page of designs.
func (l *DesignLogic) List(req *types.ListFormDesignsRequest) ([]types.FormDesignInfo, int64, error) {
	query := l.db.Model(&model.FormDesign{})
	if req.Key != "" {
		query = query.Where("`key` LIKE ?", "%"+req.Key+"%")
	}
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Status != nil {
		query = query.Where("status = ?", *req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	var designs []model.FormDesign
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&designs).Error
	if err != nil {
		return nil, 0, err
	}

	infos := utils.SliceMap(designs, func(_ int, d model.FormDesign) types.FormDesignInfo {
		return types.FormDesignInfo{
			ID:         d.ID,
			Key:        d.Key,
			Name:       d.Name,
			WorkflowID: d.WorkflowID,
			Version:    d.Version,
			Status:     d.Status,
			Remark:     d.Remark,
		}
	})
	return infos, total, nil
}
