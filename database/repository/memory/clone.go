package memory

import "partnerhub/models"

func clonePartner(p *models.Partner) *models.Partner {
	c := *p
	if p.TransferDate != nil {
		t := *p.TransferDate
		c.TransferDate = &t
	}
	c.MonthlyGifts = append([]models.MonthlyGift(nil), p.MonthlyGifts...)
	c.Clients = append([]models.Client(nil), p.Clients...)
	c.Sales = append([]models.Sale(nil), p.Sales...)
	c.AssignedServices = append([]models.AssignedService(nil), p.AssignedServices...)
	c.TierHistory = append([]models.TierChange(nil), p.TierHistory...)
	return &c
}

func cloneService(s *models.Service) *models.Service {
	c := *s
	c.AuthorizedPartners = append([]models.AuthorizedPartner(nil), s.AuthorizedPartners...)
	c.AppliedSales = append([]string(nil), s.AppliedSales...)
	return &c
}
