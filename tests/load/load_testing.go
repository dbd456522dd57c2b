package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 5
	duration   = 3 * time.Minute
)

type applicantCreateRequest struct {
	CampaignID       int64  `json:"campaign_id"`
	FullName         string `json:"full_name"`
	YandexLogin      string `json:"yandex_login"`
	TestingContestID int64  `json:"testing_contest_id"`
}

type streamCreateRequest struct {
	CampaignID  int64  `json:"campaign_id"`
	VenueID     int64  `json:"venue_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationMin int    `json:"duration_min"`
}

type invitationCreateRequest struct {
	ApplicantID int64   `json:"applicant_id"`
	StreamIDs   []int64 `json:"stream_ids"`
	TTLHours    int     `json:"ttl_hours"`
}

var (
	streams []int64
	slots   []int64
	tokens  []string
	httpc   = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url string, body any, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 400 {
		payload, _ := io.ReadAll(resp.Body)
		_ = json.Unmarshal(payload, out)
	}
	return resp.StatusCode, nil
}

// Seed
func seedData() error {
	log.Println("Seeding: creating streams...")

	// 10 потоков по 16 слотов (09:00-17:00, слот 30 минут)
	for s := 1; s <= 10; s++ {
		date := time.Now().AddDate(0, 0, s).Format("2006-01-02")
		var created struct {
			Stream struct {
				ID int64 `json:"id"`
			} `json:"stream"`
		}
		status, err := postJSON(targetHost+"/streams", streamCreateRequest{
			CampaignID:  1,
			VenueID:     1,
			Date:        date,
			StartTime:   "09:00",
			EndTime:     "17:00",
			DurationMin: 30,
		}, &created)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN POST /streams returned %d\n", status)
			continue
		}
		streams = append(streams, created.Stream.ID)
		time.Sleep(20 * time.Millisecond)
	}

	log.Println("Seeding: creating applicants and invitations...")

	for a := 1; a <= 100; a++ {
		var createdApplicant struct {
			Applicant struct {
				ID int64 `json:"id"`
			} `json:"applicant"`
		}
		status, err := postJSON(targetHost+"/applicants", applicantCreateRequest{
			CampaignID:       1,
			FullName:         fmt.Sprintf("Load Applicant %d", a),
			YandexLogin:      fmt.Sprintf("load-user-%04d", a),
			TestingContestID: 1,
		}, &createdApplicant)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN POST /applicants returned %d\n", status)
			continue
		}

		// Каждому абитуриенту — приглашение на два случайных потока.
		streamIDs := []int64{
			streams[rand.Intn(len(streams))],
			streams[rand.Intn(len(streams))],
		}
		var createdInvitation struct {
			Invitation struct {
				SecretToken string `json:"secret_token"`
			} `json:"invitation"`
		}
		status, err = postJSON(targetHost+"/invitations", invitationCreateRequest{
			ApplicantID: createdApplicant.Applicant.ID,
			StreamIDs:   streamIDs,
			TTLHours:    72,
		}, &createdInvitation)
		if err != nil {
			return err
		}
		if status >= 400 {
			log.Printf("WARN POST /invitations returned %d\n", status)
			continue
		}
		tokens = append(tokens, createdInvitation.Invitation.SecretToken)
		time.Sleep(15 * time.Millisecond)
	}

	// Слоты для атаки собираем из первого потока.
	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/streams/%d", targetHost, streams[0]), nil)
	resp, err := httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	var streamView struct {
		Slots []struct {
			ID int64 `json:"id"`
		} `json:"slots"`
	}
	payload, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(payload, &streamView)
	for _, s := range streamView.Slots {
		slots = append(slots, s.ID)
	}

	log.Printf("Seed completed: streams=%d invitations=%d slots=%d\n", len(streams), len(tokens), len(slots))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()

		// 55% GET invitations/:token — просмотр свободных слотов
		if r < 0.55 {
			token := tokens[rand.Intn(len(tokens))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/invitations/%s", targetHost, token)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 25% POST accept — гонка за ограниченный пул слотов,
		// проигравшие получают 409 SLOT_OCCUPIED
		if r < 0.80 {
			token := tokens[rand.Intn(len(tokens))]
			slot := slots[rand.Intn(len(slots))]
			body, _ := json.Marshal(map[string]int64{"slot_id": slot})
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/invitations/%s/accept", targetHost, token)
			t.Body = body
			t.Header = map[string][]string{"Content-Type": {"application/json"}}
			return nil
		}

		// 15% GET streams/:id
		if r < 0.95 {
			stream := streams[rand.Intn(len(streams))]
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/streams/%d", targetHost, stream)
			t.Body = nil
			t.Header = map[string][]string{"Accept": {"application/json"}}
			return nil
		}

		// 5% GET stats/occupancy
		t.Method = http.MethodGet
		t.URL = targetHost + "/stats/occupancy"
		t.Body = nil
		t.Header = map[string][]string{"Accept": {"application/json"}}
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	if len(streams) == 0 || len(tokens) == 0 || len(slots) == 0 {
		log.Fatal("Seed produced no targets")
	}

	runAttack()
}
