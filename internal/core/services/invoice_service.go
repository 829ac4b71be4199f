package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	"github.com/subhoajk39-commits/invvvoice/internal/core/ports"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
)

// InvoiceCollaborators are the external ports the synthesizer depends on.
type InvoiceCollaborators struct {
	Templates ports.TemplateProvider
	Renderer  ports.InvoiceRenderer
	Words     ports.WordsConverter
	Artifacts ports.ArtifactStore
}

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	workRepo     portsrepo.WorkRecordReader
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	collab       InvoiceCollaborators
	templateName string
	wordsLocale  string
	bankDetails  []string
	location     *time.Location
	now          func() time.Time
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceTemplate overrides the logical template name.
func WithInvoiceTemplate(name string) InvoiceServiceOption {
	return func(s *invoiceService) {
		if name != "" {
			s.templateName = name
		}
	}
}

// WithWordsLocale sets the locale of the amount-in-words line.
func WithWordsLocale(locale string) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.wordsLocale = locale
	}
}

// WithBankDetails sets the lines printed under a bank invoice. Empty lines are dropped.
func WithBankDetails(lines []string) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.bankDetails = s.bankDetails[:0]
		for _, line := range lines {
			if strings.TrimSpace(line) != "" {
				s.bankDetails = append(s.bankDetails, line)
			}
		}
	}
}

// WithInvoiceLocation sets the time zone of filter dates and the generation month.
func WithInvoiceLocation(loc *time.Location) InvoiceServiceOption {
	return func(s *invoiceService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithInvoiceClock overrides the generation clock.
func WithInvoiceClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.now = now
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(
	workRepo portsrepo.WorkRecordReader,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	collab InvoiceCollaborators,
	scopes portssvc.ScopeResolverSvc,
	options ...InvoiceServiceOption,
) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		BaseService:  BaseService{Scopes: scopes},
		workRepo:     workRepo,
		invoiceRepo:  invoiceRepo,
		collab:       collab,
		templateName: domain.InvoiceTemplateName,
		wordsLocale:  "en",
		location:     time.UTC,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GenerateInvoice selects the scoped records matching req, splices them into the
// invoice template and persists the result. Persistence failures do not fail the
// call: the document is still returned with PersistErr set.
func (s *invoiceService) GenerateInvoice(ctx context.Context, actorID string, req dto.GenerateInvoiceRequest) (*domain.GeneratedInvoice, error) {
	actor, scope, err := s.managerScope(ctx, actorID, domain.EntityWorkRecord, "generate invoices")
	if err != nil {
		return nil, err
	}
	layout, err := domain.ParseInvoiceLayout(req.Layout)
	if err != nil {
		return nil, apperrors.NewValidationFailedError(err.Error())
	}
	if layout == domain.LayoutBank && (req.ProjectID == nil || strings.TrimSpace(*req.ProjectID) == "") {
		return nil, apperrors.NewValidationFailedError("a bank invoice needs a projectID")
	}
	filter := invoiceFilterFromRequest(req, s.location)

	records, err := s.workRepo.FindWorkRecords(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load work records for invoice")
		return nil, fmt.Errorf("failed to load work records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no work records match the selection", apperrors.ErrNothingToInvoice)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].RecordID < records[j].RecordID
	})

	template, err := s.collab.Templates.Template(ctx, s.templateName)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoice template", slog.String("template", s.templateName))
		return nil, fmt.Errorf("%w: load template %s: %v", apperrors.ErrArtifact, s.templateName, err)
	}

	doc := domain.NewInvoiceDocument(records)
	doc.Layout = layout
	if layout == domain.LayoutBank {
		doc.Reference = domain.BankInvoiceReference(filter.From, filter.To)
		doc.BankDetails = s.bankDetails
	}
	if words, err := s.collab.Words.Words(doc.TotalAmount, s.wordsLocale); err != nil {
		s.LogWarn(ctx, "Amount in words unavailable, leaving the row untouched",
			slog.String("locale", s.wordsLocale),
			slog.String("error", err.Error()))
	} else {
		doc.AmountInWords = fmt.Sprintf("In Words: %s %s Only", words, domain.CurrencyName(doc.Currency))
	}

	content, err := s.collab.Renderer.Render(ctx, template, doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice")
		return nil, fmt.Errorf("%w: render invoice: %v", apperrors.ErrArtifact, err)
	}

	now := s.now().In(s.location)
	projectID, projectName := records[0].ProjectID, records[0].ProjectName
	generated := &domain.GeneratedInvoice{
		FileName:      invoiceFileName(layout, projectName, now),
		ContentType:   domain.InvoiceContentType,
		Content:       content,
		TotalQuantity: doc.TotalQuantity,
		TotalAmount:   doc.TotalAmount,
	}

	artifact := domain.InvoiceArtifact{
		InvoiceID:           uuid.NewString(),
		ProjectID:           &projectID,
		ProjectNameSnapshot: projectName,
		PeriodStart:         filter.From,
		PeriodEnd:           filter.To,
		Month:               int(now.Month()),
		Year:                now.Year(),
		TotalAmount:         doc.TotalAmount,
		FileName:            generated.FileName,
		GeneratedAt:         now.UTC(),
		GeneratedBy:         &actor.PrincipalID,
	}
	if err := s.persist(ctx, &artifact, content); err != nil {
		s.LogError(ctx, err, "Invoice generated but not persisted", slog.String("project_id", projectID))
		middleware.RecordInvoiceGenerated(middleware.InvoicePersistFailed)
		generated.PersistErr = err
		return generated, nil
	}

	middleware.RecordInvoiceGenerated(middleware.InvoicePersisted)
	s.LogInfo(ctx, "Invoice generated",
		slog.String("invoice_id", artifact.InvoiceID),
		slog.String("project_id", projectID),
		slog.Int("lines", len(doc.Lines)),
		slog.String("layout", layout.String()),
		slog.String("total", doc.TotalAmount.StringFixed(2)))
	generated.Artifact = &artifact
	return generated, nil
}

func invoiceFileName(layout domain.InvoiceLayout, projectName string, now time.Time) string {
	if layout == domain.LayoutBank {
		return domain.BankInvoiceFileName(projectName, now.Year(), now.Month())
	}
	return domain.InvoiceFileName(projectName, now.Year(), now.Month())
}

// persist stores the bytes then the record; a failed record save removes the bytes again.
func (s *invoiceService) persist(ctx context.Context, artifact *domain.InvoiceArtifact, content []byte) error {
	key := path.Join("invoices", artifact.InvoiceID, storageSafeName(artifact.FileName))
	ref, err := s.collab.Artifacts.Store(ctx, key, content, domain.InvoiceContentType)
	if err != nil {
		return fmt.Errorf("%w: store invoice: %v", apperrors.ErrArtifact, err)
	}
	artifact.FileReference = ref
	if err := s.invoiceRepo.SaveInvoice(ctx, *artifact); err != nil {
		if delErr := s.collab.Artifacts.Delete(ctx, ref); delErr != nil {
			s.LogWarn(ctx, "Failed to remove orphaned invoice file", slog.String("ref", ref), slog.String("error", delErr.Error()))
		}
		return fmt.Errorf("save invoice record: %w", err)
	}
	return nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, actorID string, params dto.ListInvoicesParams) ([]domain.InvoiceArtifact, error) {
	_, scope, err := s.managerScope(ctx, actorID, domain.EntityInvoice, "list invoices")
	if err != nil {
		return nil, err
	}
	filter := domain.InvoiceFilter{ProjectID: optionalString(params.ProjectID)}
	if params.Month != "" {
		if ym, err := domain.ParseYearMonth(params.Month); err == nil {
			year, month := ym.Year, int(ym.Month)
			filter.Year, filter.Month = &year, &month
		}
	}
	invoices, err := s.invoiceRepo.FindInvoices(ctx, scope, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		return []domain.InvoiceArtifact{}, nil
	}
	return invoices, nil
}

func (s *invoiceService) DownloadInvoice(ctx context.Context, actorID, invoiceID string) (*domain.InvoiceArtifact, []byte, error) {
	_, scope, err := s.managerScope(ctx, actorID, domain.EntityInvoice, "download invoices")
	if err != nil {
		return nil, nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceInScope(ctx, scope, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	content, err := s.collab.Artifacts.Open(ctx, invoice.FileReference)
	if err != nil {
		s.LogError(ctx, err, "Failed to open invoice file", slog.String("invoice_id", invoiceID))
		return nil, nil, fmt.Errorf("%w: open invoice file: %v", apperrors.ErrArtifact, err)
	}
	return invoice, content, nil
}

// DeleteInvoice removes the file first; the record is only deleted once the file is gone.
func (s *invoiceService) DeleteInvoice(ctx context.Context, actorID, invoiceID string) error {
	_, scope, err := s.managerScope(ctx, actorID, domain.EntityInvoice, "delete invoices")
	if err != nil {
		return err
	}
	invoice, err := s.invoiceRepo.FindInvoiceInScope(ctx, scope, invoiceID)
	if err != nil {
		return err
	}
	return s.deleteInvoice(ctx, invoice)
}

func (s *invoiceService) deleteInvoice(ctx context.Context, invoice *domain.InvoiceArtifact) error {
	if err := s.collab.Artifacts.Delete(ctx, invoice.FileReference); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice file", slog.String("invoice_id", invoice.InvoiceID))
		return fmt.Errorf("%w: delete invoice file: %v", apperrors.ErrArtifact, err)
	}
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoice.InvoiceID); err != nil {
		s.LogError(ctx, err, "Invoice file deleted but record remains", slog.String("invoice_id", invoice.InvoiceID))
		return fmt.Errorf("failed to delete invoice record: %w", err)
	}
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoice.InvoiceID))
	return nil
}

// BulkDeleteInvoices deletes the requested invoices that are in scope. Ids out
// of scope, unknown or failing are counted as skipped.
func (s *invoiceService) BulkDeleteInvoices(ctx context.Context, actorID string, invoiceIDs []string) (int, int, error) {
	_, scope, err := s.managerScope(ctx, actorID, domain.EntityInvoice, "delete invoices")
	if err != nil {
		return 0, 0, err
	}
	ids := uniqueIDs(invoiceIDs)
	invoices, err := s.invoiceRepo.FindInvoicesByIDs(ctx, scope, ids)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load invoices: %w", err)
	}

	deleted := 0
	for i := range invoices {
		if err := s.deleteInvoice(ctx, &invoices[i]); err != nil {
			continue
		}
		deleted++
	}
	return deleted, len(ids) - deleted, nil
}

// BulkDownloadInvoices zips the requested invoices that are in scope.
func (s *invoiceService) BulkDownloadInvoices(ctx context.Context, actorID string, invoiceIDs []string) ([]byte, error) {
	_, scope, err := s.managerScope(ctx, actorID, domain.EntityInvoice, "download invoices")
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.FindInvoicesByIDs(ctx, scope, uniqueIDs(invoiceIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	if len(invoices) == 0 {
		return nil, apperrors.NewNotFoundError("invoices")
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	names := map[string]struct{}{}
	for _, invoice := range invoices {
		content, err := s.collab.Artifacts.Open(ctx, invoice.FileReference)
		if err != nil {
			s.LogWarn(ctx, "Skipping unreadable invoice in archive", slog.String("invoice_id", invoice.InvoiceID), slog.String("error", err.Error()))
			continue
		}
		w, err := archive.Create(archiveName(storageSafeName(invoice.FileName), names))
		if err != nil {
			return nil, fmt.Errorf("%w: build archive: %v", apperrors.ErrArtifact, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("%w: build archive: %v", apperrors.ErrArtifact, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("%w: build archive: %v", apperrors.ErrArtifact, err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no invoice file could be read", apperrors.ErrArtifact)
	}
	return buf.Bytes(), nil
}

// archiveName de-duplicates entry names: a second "a.xlsx" becomes "a (2).xlsx",
// or the next free "a (n).xlsx" when that name is already in the archive.
func archiveName(name string, used map[string]struct{}) string {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			break
		}
		candidate = fmt.Sprintf("%s (%d)%s", base, n, ext)
	}
	used[candidate] = struct{}{}
	return candidate
}

func storageSafeName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(name)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
