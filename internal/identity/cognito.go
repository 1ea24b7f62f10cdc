package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// CognitoAPI is the subset of the Cognito client the directory uses.
// *cognitoidentityprovider.Client satisfies it; tests substitute a fake.
type CognitoAPI interface {
	AdminCreateUser(ctx context.Context, params *cognitoidentityprovider.AdminCreateUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminCreateUserOutput, error)
	AdminDeleteUser(ctx context.Context, params *cognitoidentityprovider.AdminDeleteUserInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminDeleteUserOutput, error)
}

type CognitoDirectory struct {
	client     CognitoAPI
	userPoolID string
}

func NewCognitoDirectory(client CognitoAPI, userPoolID string) *CognitoDirectory {
	return &CognitoDirectory{client: client, userPoolID: userPoolID}
}

func (d *CognitoDirectory) CreateUser(ctx context.Context, email string, isDionysusAdmin bool) error {
	return d.createUser(ctx, email, isDionysusAdmin, false)
}

func (d *CognitoDirectory) RestoreUser(ctx context.Context, email string, isDionysusAdmin bool) error {
	return d.createUser(ctx, email, isDionysusAdmin, true)
}

func (d *CognitoDirectory) createUser(ctx context.Context, email string, isDionysusAdmin bool, suppressInvite bool) error {

	in := &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId: aws.String(d.userPoolID),
		Username:   aws.String(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("email_verified"), Value: aws.String("true")},
			{Name: aws.String("custom:isDionysusAdmin"), Value: aws.String(strconv.FormatBool(isDionysusAdmin))},
		},
	}
	if suppressInvite {
		in.MessageAction = types.MessageActionTypeSuppress
	} else {
		in.DesiredDeliveryMediums = []types.DeliveryMediumType{types.DeliveryMediumTypeEmail}
	}

	if _, err := d.client.AdminCreateUser(ctx, in); err != nil {
		return fmt.Errorf("error creating identity user: %w", err)
	}
	return nil
}

func (d *CognitoDirectory) DeleteUser(ctx context.Context, email string) error {

	_, err := d.client.AdminDeleteUser(ctx, &cognitoidentityprovider.AdminDeleteUserInput{
		UserPoolId: aws.String(d.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return fmt.Errorf("error deleting identity user: %w", err)
	}
	return nil
}
