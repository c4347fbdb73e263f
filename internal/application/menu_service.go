package application

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/domain/entity"
	repo "github.com/oksasatya/go-restaurant-orders/internal/domain/repository"
	"github.com/oksasatya/go-restaurant-orders/pkg/helpers"
)

// MenuSearcher mirrors the catalog into a search index.
type MenuSearcher interface {
	Put(ctx context.Context, m *entity.MenuItem) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, q string, size int) ([]entity.MenuItem, error)
}

// ImageStore stores uploaded images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// MenuService is the catalog collaborator: plain field-level CRUD plus
// search and image upload when those backends are configured.
type MenuService struct {
	Repo   repo.MenuRepository
	Search MenuSearcher // optional
	Images ImageStore   // optional
	Logger *logrus.Logger
}

func NewMenuService(r repo.MenuRepository, search MenuSearcher, images ImageStore, logger *logrus.Logger) *MenuService {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &MenuService{Repo: r, Search: search, Images: images, Logger: logger}
}

type CreateMenuItemInput struct {
	Name         string
	Category     string
	Price        *float64
	Availability *bool
}

func (s *MenuService) List(ctx context.Context) ([]entity.MenuItem, error) {
	items, err := s.Repo.List(ctx)
	if err != nil {
		return nil, persistence("list menu", err)
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id string) (*entity.MenuItem, error) {
	m, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistence("get menu item", err)
	}
	return m, nil
}

func (s *MenuService) Create(ctx context.Context, in CreateMenuItemInput) (*entity.MenuItem, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price == nil {
		return nil, invalid("name and price are required")
	}
	price, err := normalizePrice(*in.Price)
	if err != nil {
		return nil, err
	}
	m := &entity.MenuItem{
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Price:        price,
		Availability: true,
	}
	if in.Availability != nil {
		m.Availability = *in.Availability
	}
	if err := s.Repo.Create(ctx, m); err != nil {
		return nil, persistence("create menu item", err)
	}
	s.index(ctx, m)
	return m, nil
}

func (s *MenuService) Update(ctx context.Context, id string, patch entity.MenuItemPatch) (*entity.MenuItem, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, invalid("name must not be empty")
	}
	if patch.Price != nil {
		price, err := normalizePrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}
	m, err := s.Repo.Update(ctx, id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistence("update menu item", err)
	}
	s.index(ctx, m)
	return m, nil
}

func (s *MenuService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return persistence("delete menu item", err)
	}
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("menu_item_id", id).Warn("search remove failed")
		}
	}
	return nil
}

// SearchItems returns up to size matches for q; empty when no index is
// configured.
func (s *MenuService) SearchItems(ctx context.Context, q string, size int) ([]entity.MenuItem, error) {
	q = strings.TrimSpace(q)
	if s.Search == nil || q == "" {
		return []entity.MenuItem{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	items, err := s.Search.Search(ctx, q, size)
	if err != nil {
		s.Logger.WithError(err).WithField("q", q).Error("menu search failed")
		return nil, persistence("search menu", err)
	}
	return items, nil
}

// UploadImage stores r as the item's image and records its URL.
func (s *MenuService) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader) (*entity.MenuItem, error) {
	if s.Images == nil {
		return nil, ErrUnavailable
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, invalid("content type %q is not an image", contentType)
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	url, err := s.Images.Upload(ctx, helpers.MenuImagePath(id, uuid.NewString(), filename), contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("menu_item_id", id).Error("image upload failed")
		return nil, persistence("upload image", err)
	}
	return s.Update(ctx, id, entity.MenuItemPatch{ImageURL: &url})
}

func (s *MenuService) index(ctx context.Context, m *entity.MenuItem) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Put(ctx, m); err != nil {
		s.Logger.WithError(err).WithField("menu_item_id", m.ID).Warn("search index failed")
	}
}
