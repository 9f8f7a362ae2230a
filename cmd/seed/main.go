package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Vastrika-Ecommerce/vastrika-backend/config"
	"github.com/Vastrika-Ecommerce/vastrika-backend/models"
	"github.com/Vastrika-Ecommerce/vastrika-backend/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

var (
	firstNames = []string{"Aarav", "Vivaan", "Diya", "Ananya", "Ishaan", "Meera", "Rohan", "Priya", "Kabir", "Sanya"}
	lastNames  = []string{"Sharma", "Patel", "Reddy", "Iyer", "Khan", "Das", "Mehta", "Nair", "Gupta", "Singh"}

	cities = []struct {
		City    string
		State   string
		Pincode string
	}{
		{"Mumbai", "Maharashtra", "400001"},
		{"Pune", "Maharashtra", "411001"},
		{"Bengaluru", "Karnataka", "560001"},
		{"Chennai", "Tamil Nadu", "600001"},
		{"Hyderabad", "Telangana", "500001"},
		{"Delhi", "Delhi", "110001"},
		{"Jaipur", "Rajasthan", "302001"},
		{"Kolkata", "West Bengal", "700001"},
	}

	productNames = []string{
		"Banarasi Silk Saree", "Chanderi Cotton Kurta", "Kalamkari Dupatta",
		"Ajrakh Print Stole", "Ikat Handloom Shirt", "Khadi Linen Kurta",
		"Bandhani Lehenga", "Phulkari Embroidered Shawl", "Jamdani Saree",
		"Block Print Palazzo", "Tussar Silk Blouse", "Kanjeevaram Saree",
	}

	statuses = []string{
		models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusDelivered, models.OrderStatusDelivered,
		models.OrderStatusCancelled, models.OrderStatusReturned,
	}

	paymentMethods = []string{
		models.PaymentMethodCOD, models.PaymentMethodCOD,
		models.PaymentMethodUPI, models.PaymentMethodCard,
		models.PaymentMethodNetBanking,
	}
)

// main seeds demo data for local development.
// Usage: go run cmd/seed/main.go
// This is a standalone CLI tool, not part of the main application.
func main() {
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("VASTRIKA - Demo Data Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	log.Println("✓ Connected to database")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rng := rand.New(rand.NewSource(42)) // reproducible runs

	admins := seedAdmins(ctx)
	users := seedUsers(ctx, rng, 20)
	products := seedProducts(ctx, rng)
	seedCoupons(ctx)
	addresses := seedAddresses(ctx, rng, users)
	orders := seedOrders(ctx, rng, users, addresses, products)

	fmt.Println()
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("✅ Seeding complete")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Printf("Admins:    %d\n", admins)
	fmt.Printf("Users:     %d\n", len(users))
	fmt.Printf("Products:  %d\n", len(products))
	fmt.Printf("Addresses: %d\n", len(addresses))
	fmt.Printf("Orders:    %d\n", orders)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the server: go run main.go")
	fmt.Println("2. Hit GET /api/v1/admin/orders/statistics with an admin token")
	printDevToken(users[0])
	fmt.Println()
}

// printDevToken issues a JWT for the first seeded customer so the
// storefront endpoints can be exercised without a login flow.
func printDevToken(userID string) {
	token, err := utils.GenerateJWT(uuid.MustParse(userID), "customer01@example.com", "Demo Customer")
	if err != nil {
		log.Printf("⚠️ Skipping dev token (set JWT_SECRET to get one): %v", err)
		return
	}
	fmt.Printf("3. Customer token (customer01@example.com):\n   %s\n", token)
}

func seedAdmins(ctx context.Context) int {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO admins (id, email, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'super_admin', 'active', NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`,
		uuid.Must(uuid.NewV7()).String(), "ops@vastrika.in", "Vastrika Ops")
	batch.Queue(`
		INSERT INTO admins (id, email, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'admin', 'active', NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`,
		uuid.Must(uuid.NewV7()).String(), "support@vastrika.in", "Vastrika Support")

	if err := config.Pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalf("Failed to seed admins: %v", err)
	}
	log.Println("✓ Admins seeded")
	return 2
}

func seedUsers(ctx context.Context, rng *rand.Rand, count int) []string {
	batch := &pgx.Batch{}
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.Must(uuid.NewV7()).String()
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		email := fmt.Sprintf("customer%02d@example.com", i+1)
		batch.Queue(`
			INSERT INTO users (id, email, name, status, created_at, updated_at)
			VALUES ($1, $2, $3, 'active', NOW(), NOW())
			ON CONFLICT (email) DO NOTHING`,
			id, email, name)
		ids = append(ids, id)
	}
	if err := config.Pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	log.Printf("✓ %d users seeded", count)
	return ids
}

type seededProduct struct {
	ID    string
	Name  string
	Price float64
}

func seedProducts(ctx context.Context, rng *rand.Rand) []seededProduct {
	batch := &pgx.Batch{}
	products := make([]seededProduct, 0, len(productNames))
	for i, name := range productNames {
		p := seededProduct{
			ID:    uuid.Must(uuid.NewV7()).String(),
			Name:  name,
			Price: float64(299 + rng.Intn(40)*50),
		}
		status := models.ProductStatusActive
		if i == len(productNames)-1 {
			// One inactive product so the cart reconciliation paths
			// have something to flag.
			status = models.ProductStatusInactive
		}
		batch.Queue(`
			INSERT INTO products (id, name, price, status, stock, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
			p.ID, p.Name, p.Price, status, 10+rng.Intn(90))
		products = append(products, p)
	}
	if err := config.Pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Printf("✓ %d products seeded", len(products))
	return products
}

func seedCoupons(ctx context.Context) {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO coupons (code, discount_type, discount_value, min_order_amount, max_discount, status, expires_at, created_at)
		VALUES ('WELCOME10', 'percent', 10, 499, 300, 'active', NOW() + INTERVAL '90 days', NOW())
		ON CONFLICT (code) DO NOTHING`)
	batch.Queue(`
		INSERT INTO coupons (code, discount_type, discount_value, min_order_amount, max_discount, status, expires_at, created_at)
		VALUES ('FLAT200', 'flat', 200, 1499, 0, 'active', NOW() + INTERVAL '30 days', NOW())
		ON CONFLICT (code) DO NOTHING`)
	batch.Queue(`
		INSERT INTO coupons (code, discount_type, discount_value, min_order_amount, max_discount, status, expires_at, created_at)
		VALUES ('EXPIRED50', 'flat', 50, 0, 0, 'active', NOW() - INTERVAL '1 day', NOW())
		ON CONFLICT (code) DO NOTHING`)
	if err := config.Pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalf("Failed to seed coupons: %v", err)
	}
	log.Println("✓ Coupons seeded")
}

type seededAddress struct {
	ID      string
	UserID  string
	City    string
	State   string
	Pincode string
}

func seedAddresses(ctx context.Context, rng *rand.Rand, users []string) []seededAddress {
	batch := &pgx.Batch{}
	addresses := make([]seededAddress, 0, len(users))
	for _, userID := range users {
		loc := cities[rng.Intn(len(cities))]
		a := seededAddress{
			ID:      uuid.Must(uuid.NewV7()).String(),
			UserID:  userID,
			City:    loc.City,
			State:   loc.State,
			Pincode: loc.Pincode,
		}
		batch.Queue(`
			INSERT INTO addresses
			(id, user_id, label, first_name, last_name, street, city, state, pincode, country, phone, is_default, status, created_at, updated_at)
			VALUES ($1, $2, 'Home', $3, $4, $5, $6, $7, $8, 'India', $9, true, 'active', NOW(), NOW())`,
			a.ID, userID,
			firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))],
			fmt.Sprintf("%d MG Road", 1+rng.Intn(200)),
			loc.City, loc.State, loc.Pincode,
			fmt.Sprintf("+91 98%08d", rng.Intn(100000000)))
		addresses = append(addresses, a)
	}
	if err := config.Pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalf("Failed to seed addresses: %v", err)
	}
	log.Printf("✓ %d addresses seeded", len(addresses))
	return addresses
}

func seedOrders(ctx context.Context, rng *rand.Rand, users []string, addresses []seededAddress, products []seededProduct) int {
	const orderCount = 250
	storeState := "Maharashtra"

	batch := &pgx.Batch{}
	for i := 0; i < orderCount; i++ {
		userIdx := rng.Intn(len(users))
		userID := users[userIdx]
		addr := addresses[userIdx]

		orderID := uuid.Must(uuid.NewV7()).String()
		createdAt := time.Now().AddDate(0, 0, -rng.Intn(120)).Add(-time.Duration(rng.Intn(86400)) * time.Second)
		status := statuses[rng.Intn(len(statuses))]
		method := paymentMethods[rng.Intn(len(paymentMethods))]

		var subtotal float64
		lines := 1 + rng.Intn(3)
		type line struct {
			p   seededProduct
			qty int
		}
		picked := make([]line, 0, lines)
		for j := 0; j < lines; j++ {
			p := products[rng.Intn(len(products)-1)] // skip the inactive one
			qty := 1 + rng.Intn(3)
			subtotal += p.Price * float64(qty)
			picked = append(picked, line{p, qty})
		}

		var cgst, sgst, igst float64
		tax := subtotal * 0.18
		if addr.State == storeState {
			cgst, sgst = tax/2, tax/2
		} else {
			igst = tax
		}
		shipping := 79.0
		if subtotal >= 999 {
			shipping = 0
		}
		codFee := 0.0
		if method == models.PaymentMethodCOD {
			codFee = 49
		}
		raw := subtotal + tax + shipping + codFee
		total := float64(int(raw + 0.5))
		roundOff := total - raw

		paymentStatus := models.PaymentStatusPending
		if method != models.PaymentMethodCOD || status == models.OrderStatusDelivered {
			paymentStatus = models.PaymentStatusPaid
		}
		refund := 0.0
		if status == models.OrderStatusReturned {
			paymentStatus = models.PaymentStatusRefunded
			refund = total
		}

		batch.Queue(`
			INSERT INTO orders
			(id, user_id, order_number, status, payment_method, payment_status,
			 address_id, state, city, pincode,
			 subtotal, cgst, sgst, igst, shipping_cost, cod_fee, discount,
			 round_off, total_amount, refund_amount, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			        $11, $12, $13, $14, $15, $16, 0, $17, $18, $19, $20, $20)`,
			orderID, userID, fmt.Sprintf("VAS-%05d", i+1), status, method, paymentStatus,
			addr.ID, addr.State, addr.City, addr.Pincode,
			subtotal, cgst, sgst, igst, shipping, codFee,
			roundOff, total, refund, createdAt)

		for _, l := range picked {
			batch.Queue(`
				INSERT INTO order_items
				(id, order_id, user_id, product_id, product_name, price, quantity, subtotal, status, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
				uuid.Must(uuid.NewV7()).String(), orderID, userID,
				l.p.ID, l.p.Name, l.p.Price, l.qty, l.p.Price*float64(l.qty),
				status, createdAt)
		}
	}
	if err := config.Pool.SendBatch(ctx, batch).Close(); err != nil {
		log.Fatalf("Failed to seed orders: %v", err)
	}
	log.Printf("✓ %d orders seeded", orderCount)
	return orderCount
}
