package memory

import (
	"context"
	"time"

	"github.com/tsenako/console-service/internal/domain"
)

// Stores bundles the in-memory repositories for the no-database mode.
type Stores struct {
	Tickets      *TicketStore
	Messages     *MessageStore
	Chats        *ChatStore
	FAQ          *FAQStore
	Applications *ApplicationStore
	Settings     *SettingsStore
	Operators    *OperatorStore
}

// NewStores builds the full set of empty stores.
func NewStores() *Stores {
	return &Stores{
		Tickets:      NewTicketStore(),
		Messages:     NewMessageStore(),
		Chats:        NewChatStore(),
		FAQ:          NewFAQStore(),
		Applications: NewApplicationStore(),
		Settings:     NewSettingsStore(),
		Operators:    NewOperatorStore(),
	}
}

// Seed loads the demo dataset the consoles start from when no database
// is configured.
func (s *Stores) Seed(ctx context.Context) error {
	now := time.Now()
	shopID := "shop-ravinala"
	phone := "+261 34 05 123 45"

	ticket := domain.Ticket{
		TicketNumber: "TKT-20250810-0001",
		ShopID:       &shopID,
		Customer: domain.Customer{
			Name:  "Hery Rakotomalala",
			Email: "hery.rakoto@example.mg",
			Phone: &phone,
		},
		Subject:   "Commande non livrée à Antsirabe",
		Status:    domain.TicketStatusOpen,
		Priority:  domain.TicketPriorityHigh,
		Category:  domain.TicketCategoryDelivery,
		CreatedAt: now.Add(-72 * time.Hour),
	}
	if err := s.Tickets.Create(ctx, &ticket); err != nil {
		return err
	}
	if err := s.Messages.Create(ctx, &domain.Message{
		ParentKind: domain.ParentTicket,
		ParentID:   ticket.ID,
		Author:     domain.AuthorCustomer,
		Body:       "Bonjour, ma commande n'est toujours pas arrivée après 10 jours.",
		CreatedAt:  ticket.CreatedAt,
	}); err != nil {
		return err
	}

	ticket2 := domain.Ticket{
		TicketNumber: "TKT-20250812-0002",
		Customer: domain.Customer{
			Name:  "Voahangy Andriamanjato",
			Email: "voahangy.a@example.mg",
		},
		Subject:   "Paiement mobile money refusé",
		Status:    domain.TicketStatusInProgress,
		Priority:  domain.TicketPriorityUrgent,
		Category:  domain.TicketCategoryPayment,
		CreatedAt: now.Add(-48 * time.Hour),
	}
	if err := s.Tickets.Create(ctx, &ticket2); err != nil {
		return err
	}
	if err := s.Messages.Create(ctx, &domain.Message{
		ParentKind: domain.ParentTicket,
		ParentID:   ticket2.ID,
		Author:     domain.AuthorCustomer,
		Body:       "Le paiement par MVola échoue à chaque tentative.",
		CreatedAt:  ticket2.CreatedAt,
	}); err != nil {
		return err
	}

	visitorName := "Tahina"
	chat := domain.ChatSession{
		Visitor: domain.Visitor{
			Name:     &visitorName,
			IP:       "197.158.1.24",
			Location: "Antananarivo, MG",
		},
		Status:    domain.ChatStatusWaiting,
		StartedAt: now.Add(-10 * time.Minute),
	}
	if err := s.Chats.Create(ctx, &chat); err != nil {
		return err
	}

	faqs := []domain.FAQEntry{
		{
			Question: "Comment suivre ma commande ?",
			Answer:   "Rendez-vous dans votre espace client, rubrique Mes commandes.",
			Category: "commandes",
		},
		{
			Question: "Quels moyens de paiement acceptez-vous ?",
			Answer:   "MVola, Orange Money, Airtel Money et carte bancaire.",
			Category: "paiement",
		},
	}
	for i := range faqs {
		if err := s.FAQ.Create(ctx, &faqs[i]); err != nil {
			return err
		}
	}

	s.Operators.Put(domain.Operator{
		ID:    "op-platform-1",
		Name:  "Miora Rasoanaivo",
		Email: "miora@tsenako.mg",
		Scope: domain.ScopePlatform,
		// bcrypt hash of "changeme-dev" for local development only
		PasswordHash: "$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZG1PzXhCLuhGzQJ4eaXOYT5jmh5y4W",
	})
	s.Operators.Put(domain.Operator{
		ID:           "op-shop-1",
		Name:         "Lalaina Razafindrakoto",
		Email:        "lalaina@ravinala.mg",
		Scope:        domain.ScopeShop,
		ShopID:       &shopID,
		PasswordHash: "$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZG1PzXhCLuhGzQJ4eaXOYT5jmh5y4W",
	})

	return nil
}
