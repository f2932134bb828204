package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techagentng/hazardx/config"
	"github.com/techagentng/hazardx/models"
)

// Classifier suggests a hazard type from a report photo. The contract with the
// external endpoint is image URL in, label plus confidence out; everything else
// about the endpoint is its own business.
type Classifier interface {
	ClassifyImage(ctx context.Context, imageURL string) (string, float64, error)
}

type httpClassifier struct {
	url    string
	client *http.Client
}

func NewClassifier(conf *config.Config) Classifier {
	return &httpClassifier{
		url:    conf.ClassifierURL,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

type classifyRequest struct {
	ImageURL string `json:"image_url"`
}

type classifyResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (c *httpClassifier) ClassifyImage(ctx context.Context, imageURL string) (string, float64, error) {
	if c.url == "" {
		return models.HazardOther, 0, nil
	}

	payload, err := json.Marshal(classifyRequest{ImageURL: imageURL})
	if err != nil {
		return models.HazardOther, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return models.HazardOther, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.HazardOther, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.HazardOther, 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return models.HazardOther, 0, err
	}

	label := out.Label
	if !models.ValidHazardType(label) {
		logrus.Debugf("classifier label %q not a known hazard type", out.Label)
		label = models.HazardOther
	}
	return label, out.Confidence, nil
}
