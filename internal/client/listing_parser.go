package client

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"storefront/assembly/internal/domain"
)

// listingParser extracts product references and pagination from rendered
// category listing pages. The storefront exposes listings as HTML only; the
// product data itself comes from the JSON catalog API.
type listingParser struct {
	baseURL string
}

func newListingParser(baseURL string) *listingParser {
	return &listingParser{
		baseURL: baseURL,
	}
}

var (
	productHrefRegexp  = regexp.MustCompile(`/p/([A-Za-z0-9_-]+)`)
	paginationRegexp   = regexp.MustCompile(`(\d+)\s+products.*?[Pp]age\s+(\d+)\s+of\s+(\d+)`)
	itemsPerPageRegexp = regexp.MustCompile(`[Ss]howing\s+(\d+)\s+per\s+page`)
)

func (p *listingParser) ParseListingPage(html, category string) (*domain.ListingPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &domain.ListingPage{
		Category: category,
		Items:    make([]domain.ListingPageItem, 0),
	}

	p.extractItems(doc, page)

	if err := p.extractPaginationInfo(doc, page); err != nil {
		return nil, err
	}

	log.Debugf("Parsed listing page %d of %d for %s with %d items",
		page.PageNumber, page.TotalPages, category, len(page.Items))
	return page, nil
}

func (p *listingParser) extractItems(doc *goquery.Document, page *domain.ListingPage) {
	seen := make(map[string]bool)

	doc.Find("a[href*='/p/']").Each(func(i int, link *goquery.Selection) {
		href, exists := link.Attr("href")
		if !exists {
			return
		}

		matches := productHrefRegexp.FindStringSubmatch(href)
		if len(matches) < 2 {
			return
		}

		productID := matches[1]
		// Product cards carry several links to the same product (image,
		// title, price). Keep one reference per product.
		if seen[productID] {
			return
		}
		seen[productID] = true

		if !strings.HasPrefix(href, "http") {
			href = p.baseURL + href
		}

		page.Items = append(page.Items, domain.ListingPageItem{
			ProductID:  productID,
			ProductURL: href,
		})
	})
}

func (p *listingParser) extractPaginationInfo(doc *goquery.Document, page *domain.ListingPage) error {
	fullText := doc.Text()

	if matches := paginationRegexp.FindStringSubmatch(fullText); len(matches) >= 4 {
		if totalItems, err := strconv.Atoi(matches[1]); err == nil {
			page.TotalItems = totalItems
		}
		if currentPage, err := strconv.Atoi(matches[2]); err == nil {
			page.PageNumber = currentPage
		}
		if totalPages, err := strconv.Atoi(matches[3]); err == nil {
			page.TotalPages = totalPages
		}
		if matches := itemsPerPageRegexp.FindStringSubmatch(fullText); len(matches) > 1 {
			if itemsPerPage, err := strconv.Atoi(matches[1]); err == nil {
				page.ItemsPerPage = itemsPerPage
			}
		}
		return nil
	}

	// A single page of results often renders without pagination controls.
	if len(page.Items) > 0 {
		log.Warnf("No pagination found on %s listing, assuming single page with %d items",
			page.Category, len(page.Items))
		page.PageNumber = 1
		page.TotalPages = 1
		page.TotalItems = len(page.Items)
		page.ItemsPerPage = len(page.Items)
		return nil
	}

	return fmt.Errorf("no pagination and no products found on %s listing page", page.Category)
}
