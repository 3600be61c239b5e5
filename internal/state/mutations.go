package state

import (
	"context"

	"github.com/MrSnakeDoc/folio/internal/domain"
)

// Each mutation writes through the store, then refreshes the snapshot so
// readers see the change. A failed write returns its error and leaves the
// snapshot untouched. A failed refresh after a good write is recorded in
// the snapshot, not returned.

func (p *Provider) UpsertTopic(ctx context.Context, t domain.Topic) (domain.Topic, error) {
	stored, err := p.store.UpsertTopic(ctx, t)
	if err != nil {
		return domain.Topic{}, err
	}
	_ = p.Refresh(ctx)
	return stored, nil
}

func (p *Provider) DeleteTopic(ctx context.Context, id string) error {
	return p.afterWrite(ctx, p.store.DeleteTopic(ctx, id))
}

func (p *Provider) UpsertNews(ctx context.Context, n domain.NewsItem) (domain.NewsItem, error) {
	stored, err := p.store.UpsertNews(ctx, n)
	if err != nil {
		return domain.NewsItem{}, err
	}
	_ = p.Refresh(ctx)
	return stored, nil
}

func (p *Provider) DeleteNews(ctx context.Context, id string) error {
	return p.afterWrite(ctx, p.store.DeleteNews(ctx, id))
}

func (p *Provider) UpsertActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	stored, err := p.store.UpsertActivity(ctx, a)
	if err != nil {
		return domain.Activity{}, err
	}
	_ = p.Refresh(ctx)
	return stored, nil
}

func (p *Provider) DeleteActivity(ctx context.Context, id string) error {
	return p.afterWrite(ctx, p.store.DeleteActivity(ctx, id))
}

func (p *Provider) UpdateHeroWords(ctx context.Context, words []string) error {
	return p.afterWrite(ctx, p.store.UpdateHeroWords(ctx, words))
}

func (p *Provider) UpdateProfileImage(ctx context.Context, image string) error {
	return p.afterWrite(ctx, p.store.UpdateProfileImage(ctx, image))
}

func (p *Provider) afterWrite(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	_ = p.Refresh(ctx)
	return nil
}
