package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() func() time.Time {
	ts := time.Date(2026, time.April, 2, 14, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func sequentialIDs() IDGenerator {
	var counter int
	return func() uuid.UUID {
		counter++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", counter))
	}
}

func newTestService(opts ...ServiceOption) Service {
	base := []ServiceOption{
		WithClock(fixedClock()),
		WithIDGenerator(sequentialIDs()),
	}
	return NewService(
		NewMemoryArticleRepository(),
		NewMemoryProductRepository(),
		NewMemoryProjectRepository(),
		NewMemoryServiceLineRepository(),
		append(base, opts...)...,
	)
}

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func TestCreateArticleValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateArticle(ctx, CreateArticleInput{TitleEn: "News", SlugEn: "news", SlugAr: "news-ar"}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.CreateArticle(ctx, CreateArticleInput{TitleEn: "News", TitleAr: "أخبار", SlugAr: "news-ar"}); !errors.Is(err, ErrSlugRequired) {
		t.Fatalf("expected ErrSlugRequired, got %v", err)
	}

	article, err := svc.CreateArticle(ctx, CreateArticleInput{
		TitleEn: "Company News", TitleAr: "أخبار الشركة",
		SlugEn: " Company News ", SlugAr: "news-ar",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if article.SlugEn != "company-news" {
		t.Fatalf("expected normalized slug, got %q", article.SlugEn)
	}

	if _, err := svc.CreateArticle(ctx, CreateArticleInput{
		TitleEn: "Other", TitleAr: "آخر",
		SlugEn: "company-news", SlugAr: "other-ar",
	}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestUpdateArticlePartial(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	article, err := svc.CreateArticle(ctx, CreateArticleInput{
		TitleEn: "Original", TitleAr: "أصلي",
		SlugEn: "original", SlugAr: "original-ar",
		CategoryEn: strPtr("Corporate"),
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	updated, err := svc.UpdateArticle(ctx, UpdateArticleInput{
		ArticleID: article.ID,
		TitleEn:   strPtr("Revised"),
	})
	if err != nil {
		t.Fatalf("update article: %v", err)
	}
	if updated.TitleEn != "Revised" {
		t.Fatalf("expected updated title, got %q", updated.TitleEn)
	}
	if updated.TitleAr != "أصلي" {
		t.Fatalf("expected untouched Arabic title, got %q", updated.TitleAr)
	}
	if updated.CategoryEn == nil || *updated.CategoryEn != "Corporate" {
		t.Fatalf("expected untouched category, got %v", updated.CategoryEn)
	}

	if _, err := svc.UpdateArticle(ctx, UpdateArticleInput{ArticleID: article.ID, TitleAr: strPtr("  ")}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestGetArticleBySlugMatchesEitherLanguage(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	article, err := svc.CreateArticle(ctx, CreateArticleInput{
		TitleEn: "Bilingual", TitleAr: "ثنائي",
		SlugEn: "bilingual", SlugAr: "bilingual-ar",
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	for _, candidate := range []string{"bilingual", "bilingual-ar"} {
		loaded, err := svc.GetArticleBySlug(ctx, candidate)
		if err != nil {
			t.Fatalf("get by slug %q: %v", candidate, err)
		}
		if loaded.ID != article.ID {
			t.Fatalf("slug %q resolved to wrong article", candidate)
		}
	}

	var nf *NotFoundError
	if _, err := svc.GetArticleBySlug(ctx, "missing"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRenderArticleBody(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	article, err := svc.CreateArticle(ctx, CreateArticleInput{
		TitleEn: "With Body", TitleAr: "مع نص",
		SlugEn: "with-body", SlugAr: "with-body-ar",
		BodyEn: strPtr("# Heading\n\nSome **bold** text."),
	})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}

	rendered, err := svc.RenderArticleBody(ctx, article.ID, "en")
	if err != nil {
		t.Fatalf("render body: %v", err)
	}
	if !strings.Contains(rendered, "<h1") || !strings.Contains(rendered, "<strong>bold</strong>") {
		t.Fatalf("unexpected rendering: %q", rendered)
	}

	empty, err := svc.RenderArticleBody(ctx, article.ID, "ar")
	if err != nil {
		t.Fatalf("render missing body: %v", err)
	}
	if empty != "" {
		t.Fatalf("expected empty output for missing body, got %q", empty)
	}

	if _, err := svc.RenderArticleBody(ctx, article.ID, "fr"); !errors.Is(err, ErrLocaleUnknown) {
		t.Fatalf("expected ErrLocaleUnknown, got %v", err)
	}
}

func TestCreateProjectYearBounds(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateProject(ctx, CreateProjectInput{
		TitleEn: "Tower A", TitleAr: "برج أ",
		SlugEn: "tower-a", SlugAr: "tower-a-ar",
		Year: intPtr(1776),
	}); !errors.Is(err, ErrYearInvalid) {
		t.Fatalf("expected ErrYearInvalid, got %v", err)
	}

	project, err := svc.CreateProject(ctx, CreateProjectInput{
		TitleEn: "Tower A", TitleAr: "برج أ",
		SlugEn: "tower-a", SlugAr: "tower-a-ar",
		Year: intPtr(2024), LocationEn: strPtr("Riyadh"),
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.Year == nil || *project.Year != 2024 {
		t.Fatalf("expected stored year, got %v", project.Year)
	}
}

func TestServiceLineOperations(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateServiceLine(ctx, CreateServiceLineInput{
		Line:    "retail",
		TitleEn: "Retail", TitleAr: "تجزئة",
		SlugEn: "retail", SlugAr: "retail-ar",
	}); !errors.Is(err, ErrLineInvalid) {
		t.Fatalf("expected ErrLineInvalid, got %v", err)
	}

	for _, fixture := range []struct {
		line Line
		slug string
	}{
		{LineImport, "steel-import"},
		{LineImport, "machinery-import"},
		{LineContracting, "civil-works"},
	} {
		if _, err := svc.CreateServiceLine(ctx, CreateServiceLineInput{
			Line:    fixture.line,
			TitleEn: fixture.slug, TitleAr: "خدمة",
			SlugEn: fixture.slug, SlugAr: fixture.slug + "-ar",
		}); err != nil {
			t.Fatalf("create service line %q: %v", fixture.slug, err)
		}
	}

	imports, err := svc.ListServiceLines(ctx, LineImport, false)
	if err != nil {
		t.Fatalf("list import lines: %v", err)
	}
	if len(imports) != 2 {
		t.Fatalf("expected 2 import lines, got %d", len(imports))
	}

	all, err := svc.ListServiceLines(ctx, "", false)
	if err != nil {
		t.Fatalf("list all lines: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(all))
	}
}

func TestDeleteProductRemovesRow(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		TitleEn: "Rebar", TitleAr: "حديد تسليح",
		SlugEn: "rebar", SlugAr: "rebar-ar",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	var nf *NotFoundError
	if _, err := svc.GetProduct(ctx, product.ID); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}
