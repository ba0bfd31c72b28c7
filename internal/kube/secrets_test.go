package kube

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestEnsureSecretCreatesOnce(t *testing.T) {
	client := &Client{Clientset: fake.NewSimpleClientset()}
	ctx := context.Background()

	created, err := client.EnsureSecret(ctx, "prod", "shop-secrets", map[string]string{"app": "shop"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !created {
		t.Fatalf("expected first ensure to create the secret")
	}

	created, err = client.EnsureSecret(ctx, "prod", "shop-secrets", nil)
	if err != nil {
		t.Fatalf("ensure (second): %v", err)
	}
	if created {
		t.Fatalf("expected second ensure to be a no-op")
	}
}

func TestDeleteSecretToleratesMissing(t *testing.T) {
	client := &Client{Clientset: fake.NewSimpleClientset()}
	if err := client.DeleteSecret(context.Background(), "prod", "shop-secrets"); err != nil {
		t.Fatalf("delete missing secret should succeed, got %v", err)
	}
}

func TestUpdateSecretDataRoundTrip(t *testing.T) {
	seed := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "shop-secrets", Namespace: "prod"},
		Data:       map[string][]byte{"DATABASE_URL": []byte("postgres://old")},
	}
	client := &Client{Clientset: fake.NewSimpleClientset(seed)}
	ctx := context.Background()

	err := client.UpdateSecretData(ctx, "prod", "shop-secrets", func(data map[string]string) map[string]string {
		data["DATABASE_URL"] = "postgres://new"
		data["REDIS_URL"] = "redis://cache"
		return data
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	data, err := client.SecretData(ctx, "prod", "shop-secrets")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if data["DATABASE_URL"] != "postgres://new" {
		t.Fatalf("DATABASE_URL not updated: %q", data["DATABASE_URL"])
	}
	if data["REDIS_URL"] != "redis://cache" {
		t.Fatalf("REDIS_URL not added: %q", data["REDIS_URL"])
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]string{"B": "2", "A": "1", "C": "3"})
	want := []string{"A", "B", "C"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %v", i, keys)
		}
	}
}
