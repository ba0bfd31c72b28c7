package stack

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/stackctl/internal/appconfig"
	"github.com/example/stackctl/internal/kube"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

type recordingInvoker struct {
	applied []string
	deleted []string
	err     error
}

func (r *recordingInvoker) Apply(ctx context.Context, manifest string) error {
	r.applied = append(r.applied, manifest)
	return r.err
}

func (r *recordingInvoker) Delete(ctx context.Context, manifest string) error {
	r.deleted = append(r.deleted, manifest)
	return r.err
}

func testOptions(root string) Options {
	return Options{
		Root:      root,
		Context:   "staging",
		Config:    appconfig.Config{Project: "shop"},
		Namespace: "default",
	}
}

func TestRunCreateMissingManifestNeverInvokesKubectl(t *testing.T) {
	root := t.TempDir()
	kctl := &recordingInvoker{}
	client := &kube.Client{Clientset: fake.NewSimpleClientset()}

	err := RunCreate(context.Background(), testOptions(root), kctl, client, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected missing manifest error")
	}
	if len(kctl.applied) != 0 {
		t.Fatalf("kubectl must not run when the manifest is missing: %v", kctl.applied)
	}
	secrets, _ := client.Clientset.CoreV1().Secrets("default").List(context.Background(), metav1.ListOptions{})
	if len(secrets.Items) != 0 {
		t.Fatalf("no secret should be created when the manifest is missing")
	}
}

func TestRunUpdateMissingManifestNeverInvokesKubectl(t *testing.T) {
	kctl := &recordingInvoker{}
	err := RunUpdate(context.Background(), testOptions(t.TempDir()), kctl, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected missing manifest error")
	}
	if len(kctl.applied) != 0 {
		t.Fatalf("kubectl must not run: %v", kctl.applied)
	}
}

func TestRunDeleteMissingManifestNeverInvokesKubectl(t *testing.T) {
	kctl := &recordingInvoker{}
	client := &kube.Client{Clientset: fake.NewSimpleClientset()}
	err := RunDelete(context.Background(), testOptions(t.TempDir()), kctl, client, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected missing manifest error")
	}
	if len(kctl.deleted) != 0 {
		t.Fatalf("kubectl must not run: %v", kctl.deleted)
	}
}

func TestRunCreateProvisionsSecretThenApplies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stacks", "staging.yml"), "apiVersion: v1\nkind: List\nitems: []\n")
	kctl := &recordingInvoker{}
	client := &kube.Client{Clientset: fake.NewSimpleClientset()}
	var out bytes.Buffer

	if err := RunCreate(context.Background(), testOptions(root), kctl, client, &out); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(kctl.applied) != 1 || kctl.applied[0] != filepath.Join(root, "stacks", "staging.yml") {
		t.Fatalf("unexpected apply calls: %v", kctl.applied)
	}
	if _, err := client.Clientset.CoreV1().Secrets("default").Get(context.Background(), "shop-secrets", metav1.GetOptions{}); err != nil {
		t.Fatalf("project secret should exist: %v", err)
	}
	if !strings.Contains(out.String(), "Created stack staging") {
		t.Fatalf("missing confirmation message: %q", out.String())
	}
}

func TestRunDeleteRemovesSecretThenDeletes(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stacks", "staging.yml"), "apiVersion: v1\nkind: List\nitems: []\n")
	seed := &corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "shop-secrets", Namespace: "default"}}
	kctl := &recordingInvoker{}
	client := &kube.Client{Clientset: fake.NewSimpleClientset(seed)}
	var out bytes.Buffer

	if err := RunDelete(context.Background(), testOptions(root), kctl, client, &out); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(kctl.deleted) != 1 {
		t.Fatalf("expected one kubectl delete, got %v", kctl.deleted)
	}
	if _, err := client.Clientset.CoreV1().Secrets("default").Get(context.Background(), "shop-secrets", metav1.GetOptions{}); err == nil {
		t.Fatalf("project secret should be gone")
	}
	if !strings.Contains(out.String(), "Deleted stack staging") {
		t.Fatalf("missing confirmation message: %q", out.String())
	}
}

func TestRunUpdateApplies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stacks", "staging.yml"), "apiVersion: v1\nkind: List\nitems: []\n")
	kctl := &recordingInvoker{}
	var out bytes.Buffer

	if err := RunUpdate(context.Background(), testOptions(root), kctl, &out); err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(kctl.applied) != 1 {
		t.Fatalf("expected one apply, got %v", kctl.applied)
	}
	if !strings.Contains(out.String(), "Updated stack staging") {
		t.Fatalf("missing confirmation message: %q", out.String())
	}
}
