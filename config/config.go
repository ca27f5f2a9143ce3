package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	GatewayKeyID     string
	GatewayKeySecret string
	Currency         string

	// Base URL this service is reachable at; the gateway calls back here.
	CallbackBaseURL string
	// Base URL of the front-end the payer is redirected to after a callback.
	FrontendBaseURL string

	// Status written by the IPN listener when the payload carries none.
	IPNDefaultStatus string

	ProductName     string
	ProductCategory string

	// Buyer/shipping placeholders sent to the gateway when the order
	// carries no address of its own.
	BuyerAddress1 string
	BuyerAddress2 string
	BuyerCity     string
	BuyerState    string
	BuyerPostcode string
	BuyerCountry  string
	BuyerPhone    string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	// Kafka (comma-separated brokers)
	KafkaBrokers            string
	KafkaPaymentEventsTopic string
}

var AppConfig Config

func LoadConfig() {
	// Try loading .env from different locations
	envLocations := []string{
		".env",              // project root
		"config/.env",       // config subdirectory
		"../config/.env",    // one level up
		"../../config/.env", // two levels up
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = Config{
		Port: getEnvWithDefault("PORT", "8080"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: getEnvWithDefault("DB_PASSWORD", "postgres"),
		DBName:     getEnvWithDefault("DB_NAME", "university_payment"),

		GatewayKeyID:     os.Getenv("GATEWAY_KEY_ID"),
		GatewayKeySecret: os.Getenv("GATEWAY_KEY_SECRET"),
		Currency:         getEnvWithDefault("GATEWAY_CURRENCY", "BDT"),

		CallbackBaseURL: getEnvWithDefault("CALLBACK_BASE_URL", "http://localhost:8080"),
		FrontendBaseURL: getEnvWithDefault("FRONTEND_BASE_URL", "http://localhost:5173"),

		IPNDefaultStatus: getEnvWithDefault("IPN_DEFAULT_STATUS", "IPN Received"),

		ProductName:     getEnvWithDefault("PRODUCT_NAME", "Semester Fees"),
		ProductCategory: getEnvWithDefault("PRODUCT_CATEGORY", "Education"),

		BuyerAddress1: getEnvWithDefault("BUYER_ADDRESS1", "Dhaka"),
		BuyerAddress2: getEnvWithDefault("BUYER_ADDRESS2", "Bangladesh"),
		BuyerCity:     getEnvWithDefault("BUYER_CITY", "Dhaka"),
		BuyerState:    getEnvWithDefault("BUYER_STATE", "Dhaka"),
		BuyerPostcode: getEnvWithDefault("BUYER_POSTCODE", "1000"),
		BuyerCountry:  getEnvWithDefault("BUYER_COUNTRY", "Bangladesh"),
		BuyerPhone:    getEnvWithDefault("BUYER_PHONE", "01700000000"),

		SMTPHost:  getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailFrom: os.Getenv("EMAIL_FROM"),

		// Kafka settings (comma-separated brokers)
		KafkaBrokers:            getEnvWithDefault("KAFKA_BROKERS", "127.0.0.1:9092"),
		KafkaPaymentEventsTopic: getEnvWithDefault("KAFKA_PAYMENT_EVENTS_TOPIC", "tuition.payments"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDBConnString() string {
	return "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=disable"
}
