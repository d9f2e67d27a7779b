package seed

import (
	"time"

	"github.com/google/uuid"

	"github.com/acmedash/acmedash/internal/invoice"
)

type customerFixture struct {
	ID       uuid.UUID
	Name     string
	Email    string
	ImageURL string
}

type invoiceFixture struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	AmountCents int64
	Status      invoice.Status
	Date        time.Time
}

type revenueFixture struct {
	Month   string
	Revenue int64
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

var customers = []customerFixture{
	{
		ID:       uuid.MustParse("d6e15727-9fe1-4961-8c5b-ea44a9bd81aa"),
		Name:     "Evil Rabbit",
		Email:    "evil@rabbit.com",
		ImageURL: "/customers/evil-rabbit.png",
	},
	{
		ID:       uuid.MustParse("3958dc9e-712f-4377-85e9-fec4b6a6442a"),
		Name:     "Delba de Oliveira",
		Email:    "delba@oliveira.com",
		ImageURL: "/customers/delba-de-oliveira.png",
	},
	{
		ID:       uuid.MustParse("3958dc9e-742f-4377-85e9-fec4b6a6442a"),
		Name:     "Lee Robinson",
		Email:    "lee@robinson.com",
		ImageURL: "/customers/lee-robinson.png",
	},
	{
		ID:       uuid.MustParse("76d65c26-f784-44a2-ac19-586678f7c2f2"),
		Name:     "Michael Novotny",
		Email:    "michael@novotny.com",
		ImageURL: "/customers/michael-novotny.png",
	},
	{
		ID:       uuid.MustParse("cc27c14a-0acf-4f4a-a6c9-d45682c144b9"),
		Name:     "Amy Burns",
		Email:    "amy@burns.com",
		ImageURL: "/customers/amy-burns.png",
	},
	{
		ID:       uuid.MustParse("13d07535-c59e-4157-a011-f8d2ef4e0cbb"),
		Name:     "Balazs Orban",
		Email:    "balazs@orban.com",
		ImageURL: "/customers/balazs-orban.png",
	},
}

var invoices = []invoiceFixture{
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a01"), CustomerID: customers[0].ID, AmountCents: 15795, Status: invoice.StatusPending, Date: date("2022-12-06")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a02"), CustomerID: customers[1].ID, AmountCents: 20348, Status: invoice.StatusPending, Date: date("2022-11-14")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a03"), CustomerID: customers[4].ID, AmountCents: 3040, Status: invoice.StatusPaid, Date: date("2022-10-29")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a04"), CustomerID: customers[3].ID, AmountCents: 44800, Status: invoice.StatusPaid, Date: date("2023-09-10")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a05"), CustomerID: customers[5].ID, AmountCents: 34577, Status: invoice.StatusPending, Date: date("2023-08-05")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a06"), CustomerID: customers[2].ID, AmountCents: 54246, Status: invoice.StatusPending, Date: date("2023-07-16")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a07"), CustomerID: customers[0].ID, AmountCents: 66600, Status: invoice.StatusPending, Date: date("2023-06-27")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a08"), CustomerID: customers[3].ID, AmountCents: 32545, Status: invoice.StatusPaid, Date: date("2023-06-09")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a09"), CustomerID: customers[4].ID, AmountCents: 1250, Status: invoice.StatusPaid, Date: date("2023-06-17")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a10"), CustomerID: customers[5].ID, AmountCents: 8546, Status: invoice.StatusPaid, Date: date("2023-06-07")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a11"), CustomerID: customers[1].ID, AmountCents: 50000, Status: invoice.StatusPaid, Date: date("2023-08-19")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a12"), CustomerID: customers[5].ID, AmountCents: 8945, Status: invoice.StatusPaid, Date: date("2023-06-03")},
	{ID: uuid.MustParse("b1a6c7e0-0a10-4c41-9d1e-3f4e21d56a13"), CustomerID: customers[2].ID, AmountCents: 1000, Status: invoice.StatusPaid, Date: date("2022-06-05")},
}

var revenue = []revenueFixture{
	{Month: "Jan", Revenue: 2000},
	{Month: "Feb", Revenue: 1800},
	{Month: "Mar", Revenue: 2200},
	{Month: "Apr", Revenue: 2500},
	{Month: "May", Revenue: 2300},
	{Month: "Jun", Revenue: 3200},
	{Month: "Jul", Revenue: 3500},
	{Month: "Aug", Revenue: 3700},
	{Month: "Sep", Revenue: 2500},
	{Month: "Oct", Revenue: 2800},
	{Month: "Nov", Revenue: 3000},
	{Month: "Dec", Revenue: 4800},
}
