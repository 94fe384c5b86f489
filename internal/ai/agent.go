package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/reports"
	"go-shop-manager/internal/store"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

func RunAgent(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the shop's assistant.

	RULES:
	1. STOCK: If a user asks what is in stock, what is running low, or how many of
	   an item are left, call 'check_stock_summary' and read the JSON to answer.
	   Do NOT say you cannot see the stock. You CAN see it through the summary.

	2. TODAY: If the user asks about today's sales, revenue or invoice count,
	   use 'get_daily_revenue'.

	3. MONTH: If the user asks about a month's revenue, use 'get_monthly_revenue'
	   with the month in YYYY-MM format.

	USER: %s`, today, userMessage)

	// --- DEFINE TOOLS ---
	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_stock_summary",
					Description: "Get the full stock summary: for every item, how many were added, how many were invoiced, how many remain, and whether it is running low.",
				},
				{
					Name:        "get_daily_revenue",
					Description: "Get today's invoice count, items sold and total revenue including repair job payments.",
				},
				{
					Name:        "get_monthly_revenue",
					Description: "Get total revenue for one month, split into invoice sales and repair job income.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"month": {Type: genai.TypeString, Description: "Month (YYYY-MM)"},
						},
						Required: []string{"month"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {

			if funcCall.Name == "check_stock_summary" {
				return executeStockSummary(ctx, session), nil
			}

			if funcCall.Name == "get_daily_revenue" {
				return executeDailyRevenue(ctx, session), nil
			}

			if funcCall.Name == "get_monthly_revenue" {
				return executeMonthlyRevenue(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

// --- HELPER FUNCTIONS ---

func executeStockSummary(ctx context.Context, session *genai.ChatSession) string {
	var stocks []models.StockEntry
	var invoices []models.Invoice
	if err := store.DB.GetAll(ctx, models.StocksCollection, &stocks); err != nil {
		return "Error reading stock data."
	}
	if err := store.DB.GetAll(ctx, models.InvoicesCollection, &invoices); err != nil {
		return "Error reading invoice data."
	}

	jsonBytes, _ := json.Marshal(reports.ComputeAvailability(stocks, invoices))

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_stock_summary",
		Response: map[string]interface{}{"summary": string(jsonBytes)},
	})
	if err != nil {
		return "Error talking to the model."
	}
	return printResponse(finalResp)
}

func executeDailyRevenue(ctx context.Context, session *genai.ChatSession) string {
	var invoices []models.Invoice
	var tasks []models.ServiceTask
	if err := store.DB.GetAll(ctx, models.InvoicesCollection, &invoices); err != nil {
		return "Error reading invoice data."
	}
	if err := store.DB.GetAll(ctx, models.ServiceTasksCollection, &tasks); err != nil {
		return "Error reading repair data."
	}

	daily := reports.ComputeDailyRevenue(time.Now(), invoices, tasks)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_daily_revenue",
		Response: map[string]interface{}{
			"invoice_count": daily.InvoiceCount,
			"items_sold":    daily.ItemsSold,
			"revenue":       daily.Revenue,
		},
	})
	if err != nil {
		return "Error talking to the model."
	}
	return printResponse(finalResp)
}

func executeMonthlyRevenue(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	monthStr, _ := funcCall.Args["month"].(string)
	t, err := time.Parse("2006-01", monthStr)
	if err != nil {
		return "Error: Month must be in YYYY-MM format."
	}

	var invoices []models.Invoice
	var tasks []models.ServiceTask
	if err := store.DB.GetAll(ctx, models.InvoicesCollection, &invoices); err != nil {
		return "Error reading invoice data."
	}
	if err := store.DB.GetAll(ctx, models.ServiceTasksCollection, &tasks); err != nil {
		return "Error reading repair data."
	}

	summary := reports.ComputeMonthlyRevenue(t.Year(), t.Month(), invoices, tasks)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_monthly_revenue",
		Response: map[string]interface{}{
			"invoices_total":      summary.InvoicesTotal,
			"service_tasks_total": summary.ServiceTasksTotal,
			"revenue":             summary.InvoicesTotal + summary.ServiceTasksTotal,
		},
	})
	if err != nil {
		return "Error talking to the model."
	}
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
