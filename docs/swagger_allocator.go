package docs

// @title           Booking Reference Allocator API
// @version         1.0
// @description     Issues unique, human-readable booking references (RHB-<SERVICE>-<DATE>-<SEQ>) with per-day, per-service sequential numbering. Exposes allocation statistics and a live WebSocket feed for ops dashboards.

// @contact.name   RoamHub Platform Team

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
