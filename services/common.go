package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// HttpRequest sends a JSON request and returns the body together with the status code.
func HttpRequest(ctx context.Context, client *http.Client, method, rawURL string, header map[string]string, query url.Values, data interface{}) ([]byte, int, error) {

	var body io.Reader

	// 序列化參數
	if data != nil {
		requestBody, err := json.Marshal(data)
		if err != nil {
			return nil, 0, err
		}
		body = bytes.NewBuffer(requestBody)
	}

	if query != nil {
		rawURL = rawURL + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, 0, err
	}

	// 初始化 client
	if client == nil {
		client = &http.Client{}
	}

	// 發請求
	req.Header.Set("Content-Type", "application/json")
	for key, element := range header {
		req.Header.Set(key, element)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}

	// 讀取 body
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return respBody, resp.StatusCode, nil
}

func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Decimal 取小數後兩位
func Decimal(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}
