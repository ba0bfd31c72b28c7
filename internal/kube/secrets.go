// secrets.go manages the project environment Secret (<project>-secrets).
package kube

import (
	"context"
	"fmt"
	"sort"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// EnsureSecret creates the named Secret if it does not already exist.
// Returns true when the secret was created by this call.
func (c *Client) EnsureSecret(ctx context.Context, namespace, name string, labels map[string]string) (bool, error) {
	secret := &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    labels,
		},
		Type: corev1.SecretTypeOpaque,
	}
	_, err := c.Clientset.CoreV1().Secrets(namespace).Create(ctx, secret, metav1.CreateOptions{})
	if err != nil {
		if apierrors.IsAlreadyExists(err) {
			return false, nil
		}
		return false, fmt.Errorf("create secret %s/%s: %w", namespace, name, err)
	}
	return true, nil
}

// DeleteSecret removes the named Secret. A missing secret is not an error.
func (c *Client) DeleteSecret(ctx context.Context, namespace, name string) error {
	err := c.Clientset.CoreV1().Secrets(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete secret %s/%s: %w", namespace, name, err)
	}
	return nil
}

// SecretData returns the decoded key/value pairs of the named Secret.
func (c *Client) SecretData(ctx context.Context, namespace, name string) (map[string]string, error) {
	secret, err := c.Clientset.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	out := make(map[string]string, len(secret.Data))
	for k, v := range secret.Data {
		out[k] = string(v)
	}
	return out, nil
}

// UpdateSecretData applies the given mutation to the Secret's data and writes
// it back. The mutation receives the current decoded data and returns the
// full desired set.
func (c *Client) UpdateSecretData(ctx context.Context, namespace, name string, mutate func(map[string]string) map[string]string) error {
	secrets := c.Clientset.CoreV1().Secrets(namespace)
	secret, err := secrets.Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return fmt.Errorf("get secret %s/%s: %w", namespace, name, err)
	}
	current := make(map[string]string, len(secret.Data))
	for k, v := range secret.Data {
		current[k] = string(v)
	}
	desired := mutate(current)
	secret.Data = make(map[string][]byte, len(desired))
	for k, v := range desired {
		secret.Data[k] = []byte(v)
	}
	secret.StringData = nil
	if _, err := secrets.Update(ctx, secret, metav1.UpdateOptions{}); err != nil {
		return fmt.Errorf("update secret %s/%s: %w", namespace, name, err)
	}
	return nil
}

// SortedKeys returns the secret data keys in stable order for display.
func SortedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
