package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/services/dto"
	"billpilot_backend/pkg/apperrors"
)

// DocumentService manages invoices, receipts and quotations. Like customers,
// documents are visible only to the account that created them.
type DocumentService interface {
	Create(ownerID string, req *dto.CreateDocumentRequest) (*models.Document, error)
	GetByID(ownerID, documentID string) (*models.Document, error)
	List(ownerID string, limit, offset int) ([]models.Document, int64, error)
	Update(ownerID, documentID string, req *dto.UpdateDocumentRequest) (*models.Document, error)
	Delete(ownerID, documentID string) error
}

type documentService struct {
	documentRepo repositories.DocumentRepository
	customerRepo repositories.CustomerRepository
}

func NewDocumentService(documentRepo repositories.DocumentRepository, customerRepo repositories.CustomerRepository) DocumentService {
	return &documentService{documentRepo: documentRepo, customerRepo: customerRepo}
}

func (s *documentService) Create(ownerID string, req *dto.CreateDocumentRequest) (*models.Document, error) {
	// The billed customer must exist and belong to the same account
	customer, err := s.customerRepo.FindByID(req.CustomerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCustomerNotFound) {
			return nil, apperrors.NewNotFoundError("document", "Customer not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if customer.CreatedBy != ownerID {
		return nil, apperrors.ErrNotResourceOwner
	}

	items, err := marshalBillingItems(req.BillingItems)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	documentType := req.DocumentType
	if documentType == "" {
		documentType = string(models.DocumentTypeInvoice)
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	document := &models.Document{
		CreatedBy:       ownerID,
		DocumentType:    models.DocumentType(documentType),
		DocumentNumber:  req.DocumentNumber,
		DueDate:         req.DueDate,
		CustomerID:      customer.ID,
		BillingItems:    items,
		AdditionalInfo:  req.AdditionalInfo,
		TermsConditions: req.TermsConditions,
		Currency:        currency,
		Rates:           req.Rates,
		SalesTax:        req.SalesTax,
		SubTotal:        req.SubTotal,
		Total:           req.Total,
		Status:          models.PaymentStatusNotPaid,
	}
	if err := s.documentRepo.Create(document); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return document, nil
}

func (s *documentService) GetByID(ownerID, documentID string) (*models.Document, error) {
	document, err := s.documentRepo.FindByID(documentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrDocumentNotFound) {
			return nil, apperrors.NewNotFoundError("document", "Document not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if document.CreatedBy != ownerID {
		return nil, apperrors.ErrNotResourceOwner
	}
	return document, nil
}

func (s *documentService) List(ownerID string, limit, offset int) ([]models.Document, int64, error) {
	documents, err := s.documentRepo.FindByOwner(ownerID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	total, err := s.documentRepo.CountByOwner(ownerID)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return documents, total, nil
}

func (s *documentService) Update(ownerID, documentID string, req *dto.UpdateDocumentRequest) (*models.Document, error) {
	if _, err := s.GetByID(ownerID, documentID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.DocumentType != "" {
		fields["document_type"] = req.DocumentType
	}
	if req.DocumentNumber != "" {
		fields["document_number"] = req.DocumentNumber
	}
	if req.DueDate != nil {
		fields["due_date"] = req.DueDate
	}
	if req.BillingItems != nil {
		items, err := marshalBillingItems(req.BillingItems)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		fields["billing_items"] = items
	}
	if req.AdditionalInfo != "" {
		fields["additional_info"] = req.AdditionalInfo
	}
	if req.TermsConditions != "" {
		fields["terms_conditions"] = req.TermsConditions
	}
	if req.Currency != "" {
		fields["currency"] = req.Currency
	}
	if req.Rates != 0 {
		fields["rates"] = req.Rates
	}
	if req.SalesTax != 0 {
		fields["sales_tax"] = req.SalesTax
	}
	if req.SubTotal != 0 {
		fields["sub_total"] = req.SubTotal
	}
	if req.Total != 0 {
		fields["total"] = req.Total
	}
	if req.TotalAmountReceived != 0 {
		fields["total_amount_received"] = req.TotalAmountReceived
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}

	if len(fields) > 0 {
		if err := s.documentRepo.UpdateFields(documentID, fields); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetByID(ownerID, documentID)
}

func (s *documentService) Delete(ownerID, documentID string) error {
	if _, err := s.GetByID(ownerID, documentID); err != nil {
		return err
	}
	if err := s.documentRepo.Delete(documentID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func marshalBillingItems(items []dto.BillingItem) (datatypes.JSON, error) {
	if items == nil {
		items = []dto.BillingItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
