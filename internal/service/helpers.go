package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/repository"
)

func buildQuery(list dto.ListQuery, filter repository.Filter, preload ...string) repository.Query {
	return repository.Query{
		Filter:  filter,
		Search:  list.Search,
		Sort:    list.Sort,
		Page:    list.Page,
		Limit:   list.Limit,
		Preload: preload,
	}
}

func toListResult[M any, R any](page repository.Page[M], mapper func(M) R) dto.ListResult[R] {
	items := make([]R, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, mapper(item))
	}
	return dto.ListResult[R]{
		Items: items,
		Pagination: dto.Pagination{
			Page:  page.Page,
			Limit: page.Limit,
			Total: page.Total,
			Pages: page.Pages,
		},
	}
}

func newSanitizer() *bluemonday.Policy {
	return bluemonday.UGCPolicy()
}

func sanitize(policy *bluemonday.Policy, value string) string {
	return strings.TrimSpace(policy.Sanitize(value))
}

func valueOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}

// maskEmail keeps the first and last character of the local part for log lines.
func maskEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ""
	}
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || strings.Contains(domain, "@") {
		return "***"
	}
	if len(local) <= 2 {
		return local[:1] + "***@" + domain
	}
	return local[:1] + "***" + local[len(local)-1:] + "@" + domain
}
