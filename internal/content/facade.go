package content

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/folio/internal/domain"
	"github.com/MrSnakeDoc/folio/internal/logger"
)

// FallbackError reports that the primary store failed and the returned
// document was read from the local fallback instead.
type FallbackError struct {
	Cause error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("content store unavailable, showing local copy: %v", e.Cause)
}

func (e *FallbackError) Unwrap() error { return e.Cause }

// Facade exposes one operation per change to the portfolio document.
type Facade struct {
	primary  Backend
	fallback *LocalBackend
	log      logger.Logger
	now      func() time.Time
}

// NewFacade wires the selected backend. fallback is read when a hosted
// primary fails to fetch; it may be nil, and is ignored when primary is
// itself the local backend.
func NewFacade(primary Backend, fallback *LocalBackend, log logger.Logger) *Facade {
	if primary == Backend(fallback) {
		fallback = nil
	}
	return &Facade{
		primary:  primary,
		fallback: fallback,
		log:      log,
		now:      time.Now,
	}
}

// Mode reports which store serves the content.
func (f *Facade) Mode() Mode {
	return f.primary.Mode()
}

// FetchAll returns the whole document. When the primary store fails and a
// fallback is wired, the local document is returned together with a
// *FallbackError.
func (f *Facade) FetchAll(ctx context.Context) (domain.PortfolioData, error) {
	doc, err := f.primary.FetchAll(ctx)
	if err == nil {
		return doc, nil
	}
	if f.fallback == nil {
		return domain.PortfolioData{}, fmt.Errorf("fetch content: %w", err)
	}

	f.log.Error("content fetch failed, reading local fallback",
		logger.String("mode", string(f.primary.Mode())),
		logger.Error(err))

	local, lerr := f.fallback.FetchAll(ctx)
	if lerr != nil {
		return domain.PortfolioData{}, fmt.Errorf("fetch content: %w (fallback: %v)", err, lerr)
	}
	return local, &FallbackError{Cause: err}
}

// UpsertTopic fills the topic defaults, stores it and returns what was stored.
func (f *Facade) UpsertTopic(ctx context.Context, t domain.Topic) (domain.Topic, error) {
	t = domain.NormalizeTopic(t, f.now())
	if err := f.primary.Upsert(ctx, TableTopics, t); err != nil {
		return domain.Topic{}, fmt.Errorf("upsert topic %s: %w", t.ID, err)
	}
	return t, nil
}

func (f *Facade) DeleteTopic(ctx context.Context, id string) error {
	if err := f.primary.Delete(ctx, TableTopics, id); err != nil {
		return fmt.Errorf("delete topic %s: %w", id, err)
	}
	return nil
}

func (f *Facade) UpsertNews(ctx context.Context, n domain.NewsItem) (domain.NewsItem, error) {
	n = domain.NormalizeNews(n, f.now())
	if err := f.primary.Upsert(ctx, TableNews, n); err != nil {
		return domain.NewsItem{}, fmt.Errorf("upsert news %s: %w", n.ID, err)
	}
	return n, nil
}

func (f *Facade) DeleteNews(ctx context.Context, id string) error {
	if err := f.primary.Delete(ctx, TableNews, id); err != nil {
		return fmt.Errorf("delete news %s: %w", id, err)
	}
	return nil
}

func (f *Facade) UpsertActivity(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	a = domain.NormalizeActivity(a, f.now())
	if err := f.primary.Upsert(ctx, TableActivities, a); err != nil {
		return domain.Activity{}, fmt.Errorf("upsert activity %s: %w", a.ID, err)
	}
	return a, nil
}

func (f *Facade) DeleteActivity(ctx context.Context, id string) error {
	if err := f.primary.Delete(ctx, TableActivities, id); err != nil {
		return fmt.Errorf("delete activity %s: %w", id, err)
	}
	return nil
}

func (f *Facade) UpdateHeroWords(ctx context.Context, words []string) error {
	if words == nil {
		words = []string{}
	}
	if err := f.primary.UpdateSetting(ctx, SettingHeroWords, words); err != nil {
		return fmt.Errorf("update hero words: %w", err)
	}
	return nil
}

func (f *Facade) UpdateProfileImage(ctx context.Context, image string) error {
	if err := f.primary.UpdateSetting(ctx, SettingProfileImage, image); err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	return nil
}

// Import writes every record and setting of doc through the active store.
// Existing records with the same ids are replaced; others are kept.
func (f *Facade) Import(ctx context.Context, doc domain.PortfolioData) (int, error) {
	doc = f.normalizeRecords(doc)

	if local, ok := f.primary.(*LocalBackend); ok {
		current, err := local.FetchAll(ctx)
		if err != nil {
			return 0, err
		}
		merged := mergeDocuments(current, doc)
		if err := local.Replace(ctx, merged); err != nil {
			return 0, fmt.Errorf("import: %w", err)
		}
		return countRecords(doc), nil
	}

	n := 0
	for _, t := range doc.Topics {
		if _, err := f.UpsertTopic(ctx, t); err != nil {
			return n, fmt.Errorf("import: %w", err)
		}
		n++
	}
	for _, item := range doc.News {
		if _, err := f.UpsertNews(ctx, item); err != nil {
			return n, fmt.Errorf("import: %w", err)
		}
		n++
	}
	for _, a := range doc.Activities {
		if _, err := f.UpsertActivity(ctx, a); err != nil {
			return n, fmt.Errorf("import: %w", err)
		}
		n++
	}
	if len(doc.HeroWords) > 0 {
		if err := f.UpdateHeroWords(ctx, doc.HeroWords); err != nil {
			return n, fmt.Errorf("import: %w", err)
		}
	}
	if doc.ProfileImage != "" {
		if err := f.UpdateProfileImage(ctx, doc.ProfileImage); err != nil {
			return n, fmt.Errorf("import: %w", err)
		}
	}
	return n, nil
}

func (f *Facade) normalizeRecords(doc domain.PortfolioData) domain.PortfolioData {
	now := f.now()
	out := doc.Clone()
	for i := range out.Topics {
		out.Topics[i] = domain.NormalizeTopic(out.Topics[i], now)
	}
	for i := range out.News {
		out.News[i] = domain.NormalizeNews(out.News[i], now)
	}
	for i := range out.Activities {
		out.Activities[i] = domain.NormalizeActivity(out.Activities[i], now)
	}
	return out
}

func mergeDocuments(current, in domain.PortfolioData) domain.PortfolioData {
	out := current.Clone()
	for _, t := range in.Topics {
		out.Topics = domain.UpsertByID(out.Topics, t)
	}
	for _, item := range in.News {
		out.News = domain.UpsertByID(out.News, item)
	}
	for _, a := range in.Activities {
		out.Activities = domain.UpsertByID(out.Activities, a)
	}
	if len(in.HeroWords) > 0 {
		out.HeroWords = append([]string(nil), in.HeroWords...)
	}
	if in.ProfileImage != "" {
		out.ProfileImage = in.ProfileImage
	}
	return out
}

func countRecords(doc domain.PortfolioData) int {
	return len(doc.Topics) + len(doc.News) + len(doc.Activities)
}
